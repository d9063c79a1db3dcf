package repwizard

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ControlKind string

const (
	CKCheckbox ControlKind = "checkbox"
	CKRadio    ControlKind = "radio"
	CKValue    ControlKind = "value"
)

// ConditionalField shows Field only while its controlling input holds
// ControlValue. A checkbox holds "true" when checked and "false" otherwise.
type ConditionalField struct {
	Field        string      `json:"field" yaml:"field"`
	ControlField string      `json:"control_field" yaml:"control_field"`
	ControlValue string      `json:"control_value" yaml:"control_value"`
	ControlKind  ControlKind `json:"control_kind" yaml:"control_kind"`
}

func (cf ConditionalField) Visible(form url.Values) bool {
	switch cf.ControlKind {
	case CKCheckbox:
		checked := "false"
		if isChecked(form, cf.ControlField) {
			checked = "true"
		}
		return strings.EqualFold(checked, strings.TrimSpace(cf.ControlValue))
	default:
		return form.Get(cf.ControlField) == cf.ControlValue
	}
}

// isChecked follows browser semantics: an unchecked box posts nothing.
func isChecked(form url.Values, name string) bool {
	vals, ok := form[name]
	if !ok || len(vals) == 0 {
		return false
	}
	switch strings.ToLower(vals[0]) {
	case "", "false", "off", "0":
		return false
	}
	return true
}

type InputType string

const (
	ITText     InputType = "text"
	ITNumber   InputType = "number"
	ITDate     InputType = "date"
	ITDateTime InputType = "datetime-local"
	ITCheckbox InputType = "checkbox"
)

// Constraint mirrors the validity attributes of one form input.
type Constraint struct {
	Name      string    `json:"name" yaml:"name"`
	Label     string    `json:"label" yaml:"label"`
	Type      InputType `json:"type" yaml:"type"`
	Required  bool      `json:"required" yaml:"required"`
	MinLength int       `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength int       `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Pattern   string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Choices   []string  `json:"choices,omitempty" yaml:"choices,omitempty"`
}

func (c Constraint) display() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

func (c Constraint) check(value string, errs *ValidationErrors) {
	v := strings.TrimSpace(value)
	if v == "" {
		if c.Required {
			errs.Add(c.Name, "%s is required", c.display())
		}
		return
	}
	switch c.Type {
	case ITNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			errs.Add(c.Name, "%s must be a number", c.display())
		}
	case ITDate:
		if _, err := time.Parse(DateLayout, v); err != nil {
			errs.Add(c.Name, "%s must be a date", c.display())
		}
	case ITDateTime:
		if _, err := parseDateTime(v); err != nil {
			errs.Add(c.Name, "%s must be a date and time", c.display())
		}
	}
	if c.MinLength > 0 && len([]rune(v)) < c.MinLength {
		errs.Add(c.Name, "%s must be at least %d characters", c.display(), c.MinLength)
	}
	if c.MaxLength > 0 && len([]rune(v)) > c.MaxLength {
		errs.Add(c.Name, "%s must be at most %d characters", c.display(), c.MaxLength)
	}
	if c.Pattern != "" {
		re, err := regexp.Compile("^(?:" + c.Pattern + ")$")
		if err != nil || !re.MatchString(v) {
			errs.Add(c.Name, "%s has an invalid format", c.display())
		}
	}
	if len(c.Choices) > 0 {
		for _, choice := range c.Choices {
			if v == choice {
				return
			}
		}
		errs.Add(c.Name, "%s is not one of the available choices", c.display())
	}
}

// Form is the gating applied before a step submits: every visible input
// must satisfy its constraint.
type Form struct {
	Constraints  []Constraint
	Conditionals []ConditionalField
}

// Hidden reports whether a conditional rule currently hides the input.
func (f Form) Hidden(name string, values url.Values) bool {
	for _, cf := range f.Conditionals {
		if cf.Field == name && !cf.Visible(values) {
			return true
		}
	}
	return false
}

func (f Form) Validate(values url.Values) ValidationErrors {
	var errs ValidationErrors
	for _, c := range f.Constraints {
		if f.Hidden(c.Name, values) {
			continue
		}
		if c.Type == ITCheckbox {
			if c.Required && !isChecked(values, c.Name) {
				errs.Add(c.Name, "%s must be checked", c.display())
			}
			continue
		}
		c.check(values.Get(c.Name), &errs)
	}
	return errs
}
