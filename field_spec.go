package repwizard

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type FieldType string

const (
	FTString   FieldType = "string"
	FTNumber   FieldType = "number"
	FTDate     FieldType = "date"
	FTDateTime FieldType = "datetime"
	FTBoolean  FieldType = "boolean"
)

// ------------------------------------------------------------
// Catalog entry as served by the report backend:
//   { "name": "age", "type": "number", "label": "Age",
//     "help_text": "Age in years" }
// ------------------------------------------------------------

type FieldSpec struct {
	Name     string    `json:"name" yaml:"name" msgpack:"name"`
	Type     FieldType `json:"type" yaml:"type" msgpack:"type"`
	Label    string    `json:"label" yaml:"label" msgpack:"label"`
	HelpText string    `json:"help_text,omitempty" yaml:"help_text,omitempty" msgpack:"help_text,omitempty"`
	Category string    `json:"-" yaml:"-" msgpack:"-"`
}

// Key identifies a field as "name:type", the value posted in selected_fields.
func (fld FieldSpec) Key() string {
	return FieldKey(fld.Name, fld.Type)
}

func FieldKey(name string, typ FieldType) string {
	return fmt.Sprintf("%s:%s", name, typ)
}

// ParseFieldKey splits a "name:type" identifier. The type is normalized, so
// backend aliases such as "int" or "text" are accepted.
func ParseFieldKey(key string) (string, FieldType, error) {
	idx := strings.LastIndex(key, ":")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", errors.Errorf("malformed field key %q", key)
	}
	typ, err := ToFieldType(key[idx+1:])
	if err != nil {
		return "", "", err
	}
	return key[:idx], typ, nil
}

// Matches reports whether query is a case-insensitive substring of the
// field's name or label.
func (fld FieldSpec) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(fld.Name), q) ||
		strings.Contains(strings.ToLower(fld.Label), q)
}

func (fld FieldSpec) DisplayName() string {
	if fld.Label != "" {
		return fld.Label
	}
	return fld.Name
}

func (fld FieldSpec) String() string {
	return fmt.Sprintf("%s(%s) %q Category: %q", fld.Name, fld.Type, fld.Label, fld.Category)
}

func ToFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "text", "char", "str":
		return FTString, nil
	case "number", "int", "integer", "float", "decimal", "currency":
		return FTNumber, nil
	case "date":
		return FTDate, nil
	case "datetime", "timestamp":
		return FTDateTime, nil
	case "boolean", "bool":
		return FTBoolean, nil
	}
	return "", errors.Errorf("unknown field type %q", s)
}

func (typ FieldType) IsTemporal() bool {
	return typ == FTDate || typ == FTDateTime
}
