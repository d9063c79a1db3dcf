package repwizard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputs(errs ValidationErrors) []string {
	names := []string{}
	for _, fe := range errs {
		names = append(names, fe.Input)
	}
	return names
}

func TestConditionalFieldVisible(t *testing.T) {
	checkbox := ConditionalField{Field: "reason", ControlField: "late", ControlValue: "true", ControlKind: CKCheckbox}
	assert.False(t, checkbox.Visible(url.Values{}))
	assert.False(t, checkbox.Visible(url.Values{"late": {"off"}}))
	assert.True(t, checkbox.Visible(url.Values{"late": {"on"}}))

	inverse := ConditionalField{Field: "reason", ControlField: "late", ControlValue: "False", ControlKind: CKCheckbox}
	assert.True(t, inverse.Visible(url.Values{}))

	radio := ConditionalField{Field: "other", ControlField: "kind", ControlValue: "other", ControlKind: CKRadio}
	assert.True(t, radio.Visible(url.Values{"kind": {"other"}}))
	assert.False(t, radio.Visible(url.Values{"kind": {"daily"}}))
}

func TestFormValidate(t *testing.T) {
	form := Form{
		Constraints: []Constraint{
			{Name: "code", Type: ITText, Required: true, MinLength: 2, MaxLength: 4, Pattern: `[A-Z]+`},
			{Name: "qty", Type: ITNumber},
			{Name: "due", Type: ITDate},
			{Name: "agree", Type: ITCheckbox, Required: true},
			{Name: "reason", Type: ITText, Required: true},
		},
		Conditionals: []ConditionalField{
			{Field: "reason", ControlField: "late", ControlValue: "true", ControlKind: CKCheckbox},
		},
	}

	errs := form.Validate(url.Values{
		"code":  {"AB"},
		"qty":   {"3.5"},
		"due":   {"2024-05-01"},
		"agree": {"on"},
	})
	assert.Empty(t, errs)

	errs = form.Validate(url.Values{
		"code": {"abcde"},
		"qty":  {"many"},
		"due":  {"May 1"},
		"late": {"on"},
	})
	assert.Equal(t, []string{"code", "code", "qty", "due", "agree", "reason"}, inputs(errs))
	require.Error(t, errs.Err())
	assert.Contains(t, errs.Error(), "reason: reason is required")
}

func TestConstraintPatternIsAnchored(t *testing.T) {
	form := Form{Constraints: []Constraint{{Name: "n", Label: "Number", Pattern: `[0-9]{3}`}}}
	assert.Empty(t, form.Validate(url.Values{"n": {"123"}}))
	errs := form.Validate(url.Values{"n": {"x123y"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "Number has an invalid format", errs[0].Message)
}

func TestParsePresentation(t *testing.T) {
	cat := testCatalog(t)

	opts, errs := ParsePresentation(cat, url.Values{InputTitle: {" Staff "}})
	assert.Empty(t, errs)
	assert.Equal(t, PresentationOptions{Title: "Staff", PageSize: DefaultPageSize}, opts)

	// chart inputs are gated only while show_chart is on
	_, errs = ParsePresentation(cat, url.Values{InputTitle: {"Staff"}, InputShowChart: {"on"}})
	assert.Equal(t, []string{InputChartType, InputChartField}, inputs(errs))

	opts, errs = ParsePresentation(cat, url.Values{
		InputTitle:      {"Staff"},
		InputShowChart:  {"on"},
		InputChartType:  {"bar"},
		InputChartField: {"age"},
		InputPageSize:   {"50"},
		InputShowTotals: {"on"},
	})
	assert.Empty(t, errs)
	assert.Equal(t, PresentationOptions{
		Title: "Staff", ShowChart: true, ChartType: ChartBar, ChartField: "age", PageSize: 50, ShowTotals: true,
	}, opts)

	_, errs = ParsePresentation(cat, url.Values{InputPageSize: {"0"}, InputChartType: {"radar"}})
	assert.Equal(t, []string{InputTitle, InputPageSize}, inputs(errs))
}

func TestPresentationEncodeRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	want := PresentationOptions{Title: "Staff", ShowChart: true, ChartType: ChartPie, ChartField: "active", PageSize: 10}

	got, errs := ParsePresentation(cat, want.Encode())
	assert.Empty(t, errs)
	assert.Equal(t, want, got)
}
