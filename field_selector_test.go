package repwizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSelectorAddIsIdempotent(t *testing.T) {
	env, _ := testEnv(t)
	fs := NewFieldSelector(env, nil)

	fs = fs.Update(AddFieldMsg{FieldKey: "age:number"})
	fs = fs.Update(AddFieldMsg{FieldKey: "age:number"})
	fs = fs.Update(AddFieldMsg{FieldKey: "nope:string"})
	assert.Equal(t, []string{"age:number"}, fs.HiddenInputs())

	avail := fieldKeys(fs.visibleFields())
	assert.NotContains(t, avail, "age:number")
	assert.Len(t, avail, 4)
}

func TestFieldSelectorFilterAndAddAll(t *testing.T) {
	env, _ := testEnv(t)
	fs := NewFieldSelector(env, []string{"name:string"})

	fs = fs.Update(FilterFieldsMsg{Query: "date"})
	assert.Equal(t, "date", fs.Query())
	view := fs.View()
	require.Len(t, view.Available, 1)
	assert.Equal(t, "Dates", view.Available[0].Name)
	assert.Equal(t, []string{"hired:date", "updated_at:datetime"}, fieldKeys(view.Available[0].Fields))

	fs = fs.Update(AddAllMsg{})
	assert.Equal(t, []string{"name:string", "hired:date", "updated_at:datetime"}, fs.HiddenInputs())
	assert.Empty(t, fs.Available())

	fs = fs.Update(FilterFieldsMsg{Query: ""})
	assert.Equal(t, []string{"age:number", "active:boolean"}, fieldKeys(fs.visibleFields()))
}

func TestFieldSelectorRemove(t *testing.T) {
	env, _ := testEnv(t)
	fs := NewFieldSelector(env, []string{"name:string", "age:number", "hired:date"})

	fs = fs.Update(RemoveFieldMsg{FieldKey: "age:number"})
	assert.Equal(t, []string{"name:string", "hired:date"}, fs.HiddenInputs())

	same := fs.Update(RemoveFieldMsg{FieldKey: "age:number"})
	assert.Equal(t, fs.HiddenInputs(), same.HiddenInputs())

	unconfirmed := fs.Update(RemoveAllMsg{})
	assert.Len(t, unconfirmed.Selected(), 2)

	cleared := fs.Update(RemoveAllMsg{Confirmed: true})
	assert.Empty(t, cleared.Selected())
	assert.Equal(t, []string{}, cleared.HiddenInputs())
	assert.Len(t, fs.Selected(), 2)
}

func TestFieldSelectorMove(t *testing.T) {
	env, _ := testEnv(t)
	fs := NewFieldSelector(env, []string{"name:string", "age:number", "hired:date"})

	fs = fs.Update(MoveFieldMsg{From: 0, To: 2})
	assert.Equal(t, []string{"age:number", "hired:date", "name:string"}, fs.HiddenInputs())

	same := fs.Update(MoveFieldMsg{From: -1, To: 0})
	assert.Equal(t, fs.HiddenInputs(), same.HiddenInputs())
}

func TestNewFieldSelectorDropsBadKeys(t *testing.T) {
	env, logs := testEnv(t)
	fs := NewFieldSelector(env, []string{"age:number", "age:int", "salary:number", "broken", "age:number"})

	// age:int normalizes to the same field
	assert.Equal(t, []string{"age:number"}, fs.HiddenInputs())
	assert.Equal(t, 1, logs.FilterMessage(`Selected field "salary:number" not found in catalog`).Len())
	assert.GreaterOrEqual(t, logs.FilterMessageSnippet("Ignoring selected field").Len(), 1)
}
