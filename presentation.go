package repwizard

import (
	"net/url"
	"strconv"
	"strings"
)

type ChartType string

const (
	ChartTable ChartType = "table"
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartPie   ChartType = "pie"
)

const (
	InputTitle      = "title"
	InputShowChart  = "show_chart"
	InputChartType  = "chart_type"
	InputChartField = "chart_field"
	InputPageSize   = "page_size"
	InputShowTotals = "show_totals"

	DefaultPageSize = 25
)

// PresentationOptions is the last wizard step: how the report is shown.
type PresentationOptions struct {
	Title      string    `json:"title" yaml:"title" msgpack:"title"`
	ShowChart  bool      `json:"show_chart" yaml:"show_chart" msgpack:"show_chart"`
	ChartType  ChartType `json:"chart_type,omitempty" yaml:"chart_type,omitempty" msgpack:"chart_type,omitempty"`
	ChartField string    `json:"chart_field,omitempty" yaml:"chart_field,omitempty" msgpack:"chart_field,omitempty"`
	PageSize   int       `json:"page_size" yaml:"page_size" msgpack:"page_size"`
	ShowTotals bool      `json:"show_totals" yaml:"show_totals" msgpack:"show_totals"`
}

// PresentationForm describes the inputs of the presentation step. The chart
// inputs only apply while show_chart is checked.
func PresentationForm(cat *Catalog) Form {
	var fieldNames []string
	for _, fld := range cat.Fields() {
		fieldNames = append(fieldNames, fld.Name)
	}
	return Form{
		Constraints: []Constraint{
			{Name: InputTitle, Label: "Title", Type: ITText, Required: true, MaxLength: 200},
			{Name: InputShowChart, Label: "Show chart", Type: ITCheckbox},
			{
				Name: InputChartType, Label: "Chart type", Type: ITText, Required: true,
				Choices: []string{string(ChartTable), string(ChartBar), string(ChartLine), string(ChartPie)},
			},
			{Name: InputChartField, Label: "Chart field", Type: ITText, Required: true, Choices: fieldNames},
			{Name: InputPageSize, Label: "Page size", Type: ITNumber, Pattern: `[1-9][0-9]{0,3}`},
			{Name: InputShowTotals, Label: "Show totals", Type: ITCheckbox},
		},
		Conditionals: []ConditionalField{
			{Field: InputChartType, ControlField: InputShowChart, ControlValue: "true", ControlKind: CKCheckbox},
			{Field: InputChartField, ControlField: InputShowChart, ControlValue: "true", ControlKind: CKCheckbox},
		},
	}
}

// ParsePresentation gates and reads the presentation step's inputs.
func ParsePresentation(cat *Catalog, values url.Values) (PresentationOptions, ValidationErrors) {
	errs := PresentationForm(cat).Validate(values)
	opts := PresentationOptions{
		Title:      strings.TrimSpace(values.Get(InputTitle)),
		ShowChart:  isChecked(values, InputShowChart),
		ShowTotals: isChecked(values, InputShowTotals),
		PageSize:   DefaultPageSize,
	}
	if opts.ShowChart {
		opts.ChartType = ChartType(values.Get(InputChartType))
		opts.ChartField = values.Get(InputChartField)
	}
	if size, err := strconv.Atoi(strings.TrimSpace(values.Get(InputPageSize))); err == nil && size > 0 {
		opts.PageSize = size
	}
	return opts, errs
}

func (po PresentationOptions) Encode() url.Values {
	values := url.Values{}
	values.Set(InputTitle, po.Title)
	if po.ShowChart {
		values.Set(InputShowChart, "on")
		values.Set(InputChartType, string(po.ChartType))
		values.Set(InputChartField, po.ChartField)
	}
	if po.PageSize > 0 {
		values.Set(InputPageSize, strconv.Itoa(po.PageSize))
	}
	if po.ShowTotals {
		values.Set(InputShowTotals, "on")
	}
	return values
}
