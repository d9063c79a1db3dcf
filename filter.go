package repwizard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ------------------------------------------------------------
// filter_data, as posted by the filters step:
// [ { "operator": "AND",
//     "conditions": [ { "field": "age", "operator": "greater_than",
//                       "value": "30" } ] } ]
// ------------------------------------------------------------

type Combinator string

const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

func ParseCombinator(s string) (Combinator, error) {
	switch Combinator(strings.ToUpper(strings.TrimSpace(s))) {
	case And:
		return And, nil
	case Or:
		return Or, nil
	}
	return "", errors.Errorf("unknown group operator %q", s)
}

type FilterCondition struct {
	Field    string   `json:"field" yaml:"field" msgpack:"field"`
	Operator Operator `json:"operator" yaml:"operator" msgpack:"operator"`
	Value    string   `json:"value" yaml:"value" msgpack:"value"`
	Prompt   string   `json:"prompt,omitempty" yaml:"prompt,omitempty" msgpack:"prompt,omitempty"`
	PromptID string   `json:"prompt_id,omitempty" yaml:"prompt_id,omitempty" msgpack:"prompt_id,omitempty"`
}

type FilterGroup struct {
	Operator   Combinator        `json:"operator" yaml:"operator" msgpack:"operator"`
	Conditions []FilterCondition `json:"conditions" yaml:"conditions" msgpack:"conditions"`
}

func (fc FilterCondition) IsPrompt() bool {
	return fc.PromptID != ""
}

func (fc FilterCondition) String() string {
	if fc.IsPrompt() {
		return fmt.Sprintf("%s %s {%s}", fc.Field, fc.Operator.Phrase(), fc.Prompt)
	}
	if !fc.Operator.NeedsValue() {
		return fmt.Sprintf("%s %s", fc.Field, fc.Operator.Phrase())
	}
	return fmt.Sprintf("%s %s %s", fc.Field, fc.Operator.Phrase(), SingleQuote(fc.Value))
}

func SingleQuote(s string) string {
	escapedStr := strings.ReplaceAll(s, "'", "\\'")
	parts := []string{"'", "'"}
	return strings.Join(parts, escapedStr)
}

func (fg FilterGroup) String() string {
	terms := []string{}
	for _, cond := range fg.Conditions {
		terms = append(terms, cond.String())
	}
	if len(terms) == 1 {
		return terms[0]
	}
	sep := fmt.Sprintf(" %s ", strings.ToLower(string(fg.Operator)))
	return fmt.Sprintf("(%s)", strings.Join(terms, sep))
}

// EncodeFilterData renders groups as the filter_data hidden value. A nil
// slice still encodes as an empty array.
func EncodeFilterData(groups []FilterGroup) (string, error) {
	if groups == nil {
		groups = []FilterGroup{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal filter data")
	}
	return string(data), nil
}

func DecodeFilterData(s string) ([]FilterGroup, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var groups []FilterGroup
	err := json.Unmarshal([]byte(s), &groups)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal filter data")
	}
	for idx := range groups {
		op, err := ParseCombinator(string(groups[idx].Operator))
		if err != nil {
			return nil, errors.Wrapf(err, "filter group %d", idx+1)
		}
		groups[idx].Operator = op
		for cIdx := range groups[idx].Conditions {
			cond := &groups[idx].Conditions[cIdx]
			cop, err := ParseOperator(string(cond.Operator))
			if err != nil {
				return nil, errors.Wrapf(err, "filter group %d condition %d", idx+1, cIdx+1)
			}
			cond.Operator = cop
		}
	}
	return groups, nil
}
