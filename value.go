package repwizard

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// Value is a filter operand coerced to the type of the field it applies to.
type Value struct {
	Typ  FieldType
	Text string
	Num  float64
	Time time.Time
	Bool bool
}

func (val *Value) String() string {
	switch val.Typ {
	case FTNumber:
		return strconv.FormatFloat(val.Num, 'f', -1, 64)
	case FTDate:
		return val.Time.Format(DateLayout)
	case FTDateTime:
		return val.Time.Format(DateTimeLayout)
	case FTBoolean:
		if val.Bool {
			return "True"
		}
		return "False"
	}
	return val.Text
}

// CoerceValue converts a raw form value to the field's type.
func CoerceValue(typ FieldType, raw string) (*Value, error) {
	s := strings.TrimSpace(raw)
	val := &Value{Typ: typ}
	switch typ {
	case FTString:
		val.Text = raw
	case FTNumber:
		num, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			return nil, errors.Errorf("%q is not a number", raw)
		}
		val.Num = num
	case FTDate:
		tm, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, errors.Errorf("%q is not a date (YYYY-MM-DD)", raw)
		}
		val.Time = tm
	case FTDateTime:
		tm, err := parseDateTime(s)
		if err != nil {
			return nil, errors.Errorf("%q is not a date and time", raw)
		}
		val.Time = tm
	case FTBoolean:
		switch strings.ToLower(s) {
		case "true":
			val.Bool = true
		case "false":
		default:
			return nil, errors.Errorf("%q is not True or False", raw)
		}
	default:
		return nil, errors.Errorf("cannot coerce value for field type %q", typ)
	}
	return val, nil
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{DateTimeLayout, "2006-01-02T15:04:05", time.RFC3339} {
		tm, err := time.Parse(layout, s)
		if err == nil {
			return tm, nil
		}
	}
	return time.Time{}, errors.Errorf("unparsable datetime %q", s)
}

// CoerceOperand returns the typed operands a condition carries: none for
// value-less operators, two for between, one otherwise.
func CoerceOperand(typ FieldType, op Operator, raw string) ([]*Value, error) {
	if !op.NeedsValue() {
		return nil, nil
	}
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("a value is required")
	}
	if op != OpBetween {
		val, err := CoerceValue(typ, raw)
		if err != nil {
			return nil, err
		}
		return []*Value{val}, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, errors.Errorf("between expects two comma-separated values, got %q", raw)
	}
	var vals []*Value
	for _, part := range parts {
		val, err := CoerceValue(typ, part)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	backwards := vals[1].Num < vals[0].Num
	if typ.IsTemporal() {
		backwards = vals[1].Time.Before(vals[0].Time)
	}
	if backwards {
		return nil, errors.Errorf("range %s to %s ends before it starts", vals[0].String(), vals[1].String())
	}
	return vals, nil
}
