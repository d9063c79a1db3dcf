package repwizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldKeys(fields []FieldSpec) []string {
	keys := []string{}
	for _, fld := range fields {
		keys = append(keys, fld.Key())
	}
	return keys
}

func TestSortBuilderAddAndSerialize(t *testing.T) {
	env, _ := testEnv(t)
	sb := NewSortBuilder(env, nil, nil)
	assert.Equal(t, []SortEntry{}, sb.Serialize())
	assert.Len(t, sb.Available(), 5)

	sb = sb.Update(AddSortMsg{FieldKey: "age:number", Index: -1})
	sb = sb.Update(AddSortMsg{FieldKey: "name:string", Index: 0})
	sb = sb.Update(SetDirectionMsg{FieldKey: "age:number", Direction: Desc})

	assert.Equal(t, []SortEntry{
		{Field: "name", Direction: Asc},
		{Field: "age", Direction: Desc},
	}, sb.Serialize())
	assert.Equal(t, []string{"active:boolean", "hired:date", "updated_at:datetime"}, fieldKeys(sb.Available()))

	data, err := EncodeSortData(sb.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"field":"name","direction":"asc"},{"field":"age","direction":"desc"}]`, data)
}

func TestSortBuilderFieldInOnePlace(t *testing.T) {
	env, _ := testEnv(t)
	sb := NewSortBuilder(env, nil, nil)
	sb = sb.Update(AddSortMsg{FieldKey: "age:number", Index: 99})

	again := sb.Update(AddSortMsg{FieldKey: "age:number", Index: 0})
	assert.Equal(t, sb.Serialize(), again.Serialize())

	unknown := sb.Update(AddSortMsg{FieldKey: "salary:number"})
	assert.Equal(t, sb.Serialize(), unknown.Serialize())

	sb = sb.Update(RemoveSortMsg{FieldKey: "age:number"})
	assert.Empty(t, sb.Serialize())
	assert.Contains(t, fieldKeys(sb.Available()), "age:number")
}

func TestSortBuilderDirection(t *testing.T) {
	env, _ := testEnv(t)
	sb := NewSortBuilder(env, nil, []SortEntry{{Field: "hired", Direction: "DESC"}})

	view := sb.View()
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Hire Date", view.Entries[0].Label)
	assert.True(t, view.Entries[0].DescActive)
	assert.False(t, view.Entries[0].AscActive)

	sb = sb.Update(SetDirectionMsg{FieldKey: "hired:date", Direction: Asc})
	view = sb.View()
	assert.True(t, view.Entries[0].AscActive)
	assert.False(t, view.Entries[0].DescActive)

	same := sb.Update(SetDirectionMsg{FieldKey: "hired:date", Direction: "sideways"})
	assert.Equal(t, sb.Serialize(), same.Serialize())
}

func TestSortBuilderMove(t *testing.T) {
	env, _ := testEnv(t)
	sb := NewSortBuilder(env, nil, []SortEntry{
		{Field: "name", Direction: Asc},
		{Field: "age", Direction: Asc},
		{Field: "hired", Direction: Desc},
	})

	moved := sb.Update(MoveSortMsg{From: 2, To: 0})
	assert.Equal(t, []SortEntry{
		{Field: "hired", Direction: Desc},
		{Field: "name", Direction: Asc},
		{Field: "age", Direction: Asc},
	}, moved.Serialize())

	// the receiver keeps its order
	assert.Equal(t, "name", sb.Serialize()[0].Field)

	outOfRange := sb.Update(MoveSortMsg{From: 0, To: 3})
	assert.Equal(t, sb.Serialize(), outOfRange.Serialize())
}

func TestNewSortBuilderExcludesInitial(t *testing.T) {
	env, logs := testEnv(t)
	pool := []FieldSpec{
		{Name: "name", Type: FTString},
		{Name: "age", Type: FTNumber},
	}
	sb := NewSortBuilder(env, pool, []SortEntry{
		{Field: "age", Direction: Desc},
		{Field: "age", Direction: Asc},
		{Field: "hired", Direction: Asc},
		{Field: "name", Direction: "bogus"},
	})

	assert.Equal(t, []SortEntry{
		{Field: "age", Direction: Desc},
		{Field: "name", Direction: Asc},
	}, sb.Serialize())
	assert.Empty(t, sb.Available())
	assert.Equal(t, 1, logs.FilterMessage(`Sort field named "age" repeated`).Len())
	assert.Equal(t, 1, logs.FilterMessage(`Sort field named "hired" not available`).Len())
}

func TestDecodeSortData(t *testing.T) {
	entries, err := DecodeSortData(`[{"field":"age","direction":"DESC"}]`)
	require.NoError(t, err)
	assert.Equal(t, []SortEntry{{Field: "age", Direction: Desc}}, entries)

	_, err = DecodeSortData(`[{"field":"age","direction":"up"}]`)
	assert.Error(t, err)

	entries, err = DecodeSortData(" ")
	require.NoError(t, err)
	assert.Nil(t, entries)
}
