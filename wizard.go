package repwizard

import (
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

type StepKind int

const (
	StepFields StepKind = iota
	StepFilters
	StepSort
	StepPresentation
)

func (sk StepKind) String() string {
	switch sk {
	case StepFields:
		return "fields"
	case StepFilters:
		return "filters"
	case StepSort:
		return "sort"
	case StepPresentation:
		return "presentation"
	}
	return "unknown"
}

var stepTitles = map[string]StepKind{
	"fields":        StepFields,
	"select fields": StepFields,
	"columns":       StepFields,
	"filters":       StepFilters,
	"filter":        StepFilters,
	"sort":          StepSort,
	"sorting":       StepSort,
	"sort order":    StepSort,
	"presentation":  StepPresentation,
	"options":       StepPresentation,
	"display":       StepPresentation,
}

// ParseStepKind maps a step marker's title to its step.
func ParseStepKind(title string) (StepKind, error) {
	key := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	sk, ok := stepTitles[key]
	if !ok {
		return 0, errors.Errorf("unknown wizard step %q", title)
	}
	return sk, nil
}

// DetectStep finds the active step marker in a wizard page: the first
// element carrying the "active" class and a title attribute.
func DetectStep(r io.Reader) (StepKind, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse wizard page")
	}
	title, ok := findActiveTitle(doc)
	if !ok {
		return 0, errors.New("no active step marker found")
	}
	return ParseStepKind(title)
}

func findActiveTitle(node *html.Node) (string, bool) {
	if node.Type == html.ElementNode {
		var classes, title string
		hasTitle := false
		for _, attr := range node.Attr {
			switch attr.Key {
			case "class":
				classes = attr.Val
			case "title":
				title = attr.Val
				hasTitle = true
			}
		}
		if hasTitle && hasClass(classes, "active") {
			return title, true
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if title, ok := findActiveTitle(child); ok {
			return title, true
		}
	}
	return "", false
}

func hasClass(classes, want string) bool {
	for _, cls := range strings.Fields(classes) {
		if cls == want {
			return true
		}
	}
	return false
}

// Step is the builder mounted for the active wizard step.
type Step interface {
	Kind() StepKind
	Validate() ValidationErrors
	Encode() (url.Values, error)
}

func (FieldSelector) Kind() StepKind { return StepFields }
func (FilterBuilder) Kind() StepKind { return StepFilters }
func (SortBuilder) Kind() StepKind   { return StepSort }

func (fs FieldSelector) Validate() ValidationErrors {
	var errs ValidationErrors
	if len(fs.selected) == 0 {
		errs.Add(InputSelectedFields, "select at least one field")
	}
	return errs
}

func (fs FieldSelector) Encode() (url.Values, error) {
	return url.Values{InputSelectedFields: fs.HiddenInputs()}, nil
}

func (fb FilterBuilder) Encode() (url.Values, error) {
	data, err := EncodeFilterData(fb.Serialize())
	if err != nil {
		return nil, err
	}
	return url.Values{InputFilterData: {data}}, nil
}

func (sb SortBuilder) Validate() ValidationErrors {
	return nil
}

func (sb SortBuilder) Encode() (url.Values, error) {
	data, err := EncodeSortData(sb.Serialize())
	if err != nil {
		return nil, err
	}
	return url.Values{InputSortData: {data}}, nil
}

// PresentationStep wraps the presentation inputs as posted.
type PresentationStep struct {
	env    *Env
	values url.Values
}

func (PresentationStep) Kind() StepKind { return StepPresentation }

func (ps PresentationStep) Options() (PresentationOptions, ValidationErrors) {
	return ParsePresentation(ps.env.Catalog, ps.values)
}

func (ps PresentationStep) Validate() ValidationErrors {
	_, errs := ps.Options()
	return errs
}

func (ps PresentationStep) Encode() (url.Values, error) {
	opts, _ := ps.Options()
	return opts.Encode(), nil
}

// InitStep mounts the builder for kind, seeded from what was submitted so far.
func InitStep(env *Env, kind StepKind, sub Submission) (Step, error) {
	switch kind {
	case StepFields:
		return NewFieldSelector(env, sub.SelectedFields), nil
	case StepFilters:
		return NewFilterBuilder(env, sub.Filters), nil
	case StepSort:
		return NewSortBuilder(env, nil, sub.Sort), nil
	case StepPresentation:
		return PresentationStep{env: env, values: sub.Presentation.Encode()}, nil
	}
	return nil, errors.Errorf("no initializer for wizard step %d", kind)
}

// InitStepFromForm mounts the step for kind from posted form values.
func InitStepFromForm(env *Env, kind StepKind, values url.Values) (Step, error) {
	if kind == StepPresentation {
		return PresentationStep{env: env, values: values}, nil
	}
	sub, err := DecodeSubmission(values)
	if err != nil {
		return nil, err
	}
	return InitStep(env, kind, sub)
}

// SubmitStep gates a step on its validity and renders its hidden inputs.
func SubmitStep(step Step) (url.Values, error) {
	if err := step.Validate().Err(); err != nil {
		return nil, err
	}
	values, err := step.Encode()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s step", step.Kind())
	}
	return values, nil
}
