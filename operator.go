package repwizard

import (
	"strings"

	"github.com/pkg/errors"
)

type Operator string

const (
	OpEquals     Operator = "equals"
	OpNotEquals  Operator = "not_equals"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
	OpContains   Operator = "contains"
	OpNotContain Operator = "not_contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpGT         Operator = "greater_than"
	OpLT         Operator = "less_than"
	OpGE         Operator = "greater_than_or_equal"
	OpLE         Operator = "less_than_or_equal"
	OpBetween    Operator = "between"
	OpToday      Operator = "today"
	OpYesterday  Operator = "yesterday"
	OpThisWeek   Operator = "this_week"
	OpThisMonth  Operator = "this_month"
	OpThisYear   Operator = "this_year"
)

var (
	commonOps     = []Operator{OpEquals, OpNotEquals, OpIsNull, OpIsNotNull}
	textOps       = []Operator{OpContains, OpNotContain, OpStartsWith, OpEndsWith}
	comparisonOps = []Operator{OpGT, OpLT, OpGE, OpLE}
	periodOps     = []Operator{OpBetween, OpToday, OpYesterday, OpThisWeek, OpThisMonth, OpThisYear}
)

// OperatorsFor derives the operator set offered for a field type. The common
// operators always come first.
func OperatorsFor(typ FieldType) []Operator {
	ops := append([]Operator{}, commonOps...)
	switch typ {
	case FTString:
		ops = append(ops, textOps...)
	case FTNumber:
		ops = append(ops, comparisonOps...)
	case FTDate, FTDateTime:
		ops = append(ops, comparisonOps...)
		ops = append(ops, periodOps...)
	}
	return ops
}

func (op Operator) AllowedFor(typ FieldType) bool {
	for _, allowed := range OperatorsFor(typ) {
		if op == allowed {
			return true
		}
	}
	return false
}

// NeedsValue is false for operators that are complete without an operand.
func (op Operator) NeedsValue() bool {
	switch op {
	case OpIsNull, OpIsNotNull, OpToday, OpYesterday, OpThisWeek, OpThisMonth, OpThisYear:
		return false
	}
	return true
}

func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range OperatorsFor(FTDate) {
		if op == known {
			return op, nil
		}
	}
	for _, known := range textOps {
		if op == known {
			return op, nil
		}
	}
	return "", errors.Errorf("unknown operator %q", s)
}

// Phrase is the operator as read in a filter summary.
func (op Operator) Phrase() string {
	switch op {
	case OpEquals:
		return "="
	case OpNotEquals:
		return "<>"
	case OpIsNull:
		return "is empty"
	case OpIsNotNull:
		return "is not empty"
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	case OpGE:
		return ">="
	case OpLE:
		return "<="
	case OpThisWeek, OpThisMonth, OpThisYear:
		return "is in " + strings.ReplaceAll(string(op), "_", " ")
	case OpToday, OpYesterday:
		return "is " + string(op)
	}
	return strings.ReplaceAll(string(op), "_", " ")
}

// ValueControl is the kind of input rendered for a condition's value.
type ValueControl string

const (
	VCNone     ValueControl = ""
	VCText     ValueControl = "text"
	VCNumber   ValueControl = "number"
	VCDate     ValueControl = "date"
	VCDateTime ValueControl = "datetime-local"
	VCBoolean  ValueControl = "boolean"
)

// ValueControlFor picks the input for a field type and operator. Operators
// that need no operand get no control at all.
func ValueControlFor(typ FieldType, op Operator) ValueControl {
	if !op.NeedsValue() {
		return VCNone
	}
	switch typ {
	case FTDate:
		return VCDate
	case FTDateTime:
		return VCDateTime
	case FTNumber:
		return VCNumber
	case FTBoolean:
		return VCBoolean
	}
	return VCText
}

// BooleanChoices are the only values offered by the boolean selector.
var BooleanChoices = []string{"True", "False"}
