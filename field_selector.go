package repwizard

import (
	reptext "github.com/radiochild/utils/text"
)

// FieldSelector holds the fields step: the ordered output columns and the
// filter-as-you-type query over the available panel.
type FieldSelector struct {
	env      *Env
	selected []FieldSpec
	query    string
}

type SelectorMsg interface {
	selectorMsg()
}

type AddFieldMsg struct {
	FieldKey string
}

// AddAllMsg adds every field currently visible in the available panel.
type AddAllMsg struct{}

type RemoveFieldMsg struct {
	FieldKey string
}

// RemoveAllMsg clears the selection, but only once the user confirmed.
type RemoveAllMsg struct {
	Confirmed bool
}

type FilterFieldsMsg struct {
	Query string
}

type MoveFieldMsg struct {
	From int
	To   int
}

func (AddFieldMsg) selectorMsg()     {}
func (AddAllMsg) selectorMsg()       {}
func (RemoveFieldMsg) selectorMsg()  {}
func (RemoveAllMsg) selectorMsg()    {}
func (FilterFieldsMsg) selectorMsg() {}
func (MoveFieldMsg) selectorMsg()    {}

// NewFieldSelector mounts the selector with previously selected "name:type"
// keys. Unknown and repeated keys are dropped.
func NewFieldSelector(env *Env, initialKeys []string) FieldSelector {
	fs := FieldSelector{env: env}
	for _, key := range initialKeys {
		name, typ, err := ParseFieldKey(key)
		if err != nil {
			env.Logger.Warnf("Ignoring selected field: %s", err.Error())
			continue
		}
		fld, ok := env.Catalog.FieldByKey(FieldKey(name, typ))
		if !ok {
			env.Logger.Warnf("Selected field %q not found in catalog", key)
			continue
		}
		fs.selected = fs.add(fs.selected, fld)
	}
	return fs
}

// add appends fld unless its key is already present.
func (fs FieldSelector) add(selected []FieldSpec, fld FieldSpec) []FieldSpec {
	for _, sel := range selected {
		if sel.Key() == fld.Key() {
			return selected
		}
	}
	return append(selected, fld)
}

func (fs FieldSelector) Update(msg SelectorMsg) FieldSelector {
	next := fs
	next.selected = append([]FieldSpec{}, fs.selected...)

	switch m := msg.(type) {

	case AddFieldMsg:
		fld, ok := next.env.Catalog.FieldByKey(m.FieldKey)
		if !ok {
			return fs
		}
		next.selected = next.add(next.selected, fld)

	case AddAllMsg:
		for _, fld := range next.visibleFields() {
			next.selected = next.add(next.selected, fld)
		}

	case RemoveFieldMsg:
		for idx, sel := range next.selected {
			if sel.Key() == m.FieldKey {
				next.selected = append(next.selected[:idx], next.selected[idx+1:]...)
				return next
			}
		}
		return fs

	case RemoveAllMsg:
		if !m.Confirmed {
			return fs
		}
		next.selected = nil

	case FilterFieldsMsg:
		next.query = m.Query

	case MoveFieldMsg:
		moved, ok := moveItem(next.selected, m.From, m.To)
		if !ok {
			return fs
		}
		next.selected = moved
	}
	return next
}

func (fs FieldSelector) visibleFields() []FieldSpec {
	var out []FieldSpec
	for _, c := range fs.Available() {
		out = append(out, c.Fields...)
	}
	return out
}

// Available is the left panel: catalog fields matching the query and not
// already selected, grouped by category.
func (fs FieldSelector) Available() []Category {
	chosen := reptext.FromStrings(fs.HiddenInputs())
	return fs.env.Catalog.Visible(fs.query, func(fld FieldSpec) bool {
		return chosen.Contains(fld.Key())
	})
}

func (fs FieldSelector) Selected() []FieldSpec {
	return append([]FieldSpec{}, fs.selected...)
}

func (fs FieldSelector) Query() string {
	return fs.query
}

// HiddenInputs is one selected_fields value per selected field, in order.
func (fs FieldSelector) HiddenInputs() []string {
	keys := []string{}
	for _, fld := range fs.selected {
		keys = append(keys, fld.Key())
	}
	return keys
}

type SelectorView struct {
	Query     string      `json:"query"`
	Available []Category  `json:"available"`
	Selected  []FieldSpec `json:"selected"`
}

func (fs FieldSelector) View() SelectorView {
	return SelectorView{
		Query:     fs.query,
		Available: fs.Available(),
		Selected:  fs.Selected(),
	}
}
