package repwizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldKey(t *testing.T) {
	name, typ, err := ParseFieldKey("age:number")
	require.NoError(t, err)
	assert.Equal(t, "age", name)
	assert.Equal(t, FTNumber, typ)

	name, typ, err = ParseFieldKey("job:site:text")
	require.NoError(t, err)
	assert.Equal(t, "job:site", name)
	assert.Equal(t, FTString, typ)

	for _, bad := range []string{"", "age", ":number", "age:", "age:blob"} {
		_, _, err := ParseFieldKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestToFieldType(t *testing.T) {
	cases := map[string]FieldType{
		"string":    FTString,
		"TEXT":      FTString,
		"int":       FTNumber,
		"currency":  FTNumber,
		"date":      FTDate,
		"timestamp": FTDateTime,
		"bool":      FTBoolean,
	}
	for in, want := range cases {
		got, err := ToFieldType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ToFieldType("json")
	assert.Error(t, err)
}

func TestFieldMatches(t *testing.T) {
	fld := FieldSpec{Name: "updated_at", Type: FTDateTime, Label: "Last Update"}
	assert.True(t, fld.Matches(""))
	assert.True(t, fld.Matches("UPDATED"))
	assert.True(t, fld.Matches("last up"))
	assert.False(t, fld.Matches("created"))
	assert.Equal(t, "updated_at:datetime", fld.Key())
}
