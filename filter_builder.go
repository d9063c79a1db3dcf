package repwizard

import (
	"fmt"
)

type ConditionState struct {
	ID          int
	FieldKey    string
	Operator    Operator
	Value       string
	Prompt      bool
	PromptLabel string
	PromptID    string
}

type GroupState struct {
	ID         int
	Operator   Combinator
	Conditions []ConditionState
}

// FilterBuilder holds the filters step: one or more groups, each holding one
// or more conditions. It is a value; Update returns the next state and never
// modifies the receiver.
type FilterBuilder struct {
	env    *Env
	groups []GroupState
	seq    int
}

// FilterMsg is an edit applied to a FilterBuilder. Groups and conditions are
// addressed by the ids handed out in the view.
type FilterMsg interface {
	filterMsg()
}

type AddGroupMsg struct{}

type RemoveGroupMsg struct {
	Group int
}

type SetGroupOperatorMsg struct {
	Group    int
	Operator Combinator
}

type AddConditionMsg struct {
	Group int
}

type RemoveConditionMsg struct {
	Group     int
	Condition int
}

type SetFieldMsg struct {
	Group     int
	Condition int
	FieldKey  string
}

type SetOperatorMsg struct {
	Group     int
	Condition int
	Operator  Operator
}

type SetValueMsg struct {
	Group     int
	Condition int
	Value     string
}

type SetPromptMsg struct {
	Group     int
	Condition int
	Prompt    bool
	Label     string
}

func (AddGroupMsg) filterMsg()         {}
func (RemoveGroupMsg) filterMsg()      {}
func (SetGroupOperatorMsg) filterMsg() {}
func (AddConditionMsg) filterMsg()     {}
func (RemoveConditionMsg) filterMsg()  {}
func (SetFieldMsg) filterMsg()         {}
func (SetOperatorMsg) filterMsg()      {}
func (SetValueMsg) filterMsg()         {}
func (SetPromptMsg) filterMsg()        {}

// NewFilterBuilder seeds the builder from previously posted filter data.
// Conditions naming unknown fields or disallowed operators are dropped.
func NewFilterBuilder(env *Env, initial []FilterGroup) FilterBuilder {
	fb := FilterBuilder{env: env}
	for gIdx, grp := range initial {
		op, err := ParseCombinator(string(grp.Operator))
		if err != nil {
			env.Logger.Warnf("filter group %d: %s, using AND", gIdx+1, err.Error())
			op = And
		}
		gs := GroupState{ID: fb.nextID(), Operator: op}
		for _, cond := range grp.Conditions {
			cs, ok := fb.seedCondition(cond)
			if ok {
				gs.Conditions = append(gs.Conditions, cs)
			}
		}
		if len(gs.Conditions) == 0 {
			gs.Conditions = append(gs.Conditions, fb.blankCondition())
		}
		fb.groups = append(fb.groups, gs)
	}
	if len(fb.groups) == 0 {
		fb.groups = append(fb.groups, fb.blankGroup())
	}
	return fb
}

func (fb *FilterBuilder) seedCondition(cond FilterCondition) (ConditionState, bool) {
	if cond.Field == "" {
		return ConditionState{}, false
	}
	fld, ok := fb.env.Catalog.FieldNamed(cond.Field)
	if !ok {
		fb.env.Logger.Warnf("Filter field named %q not found in catalog", cond.Field)
		return ConditionState{}, false
	}
	if !cond.Operator.AllowedFor(fld.Type) {
		fb.env.Logger.Warnf("Operator %q not allowed for %s field %q", cond.Operator, fld.Type, fld.Name)
		return ConditionState{}, false
	}
	cs := ConditionState{
		ID:       fb.nextID(),
		FieldKey: fld.Key(),
		Operator: cond.Operator,
		Value:    cond.Value,
	}
	if cond.IsPrompt() {
		cs.Prompt = true
		cs.PromptID = cond.PromptID
		cs.PromptLabel = cond.Prompt
		cs.Value = ""
	}
	return cs, true
}

func (fb *FilterBuilder) nextID() int {
	fb.seq++
	return fb.seq
}

func (fb *FilterBuilder) blankCondition() ConditionState {
	return ConditionState{ID: fb.nextID(), Operator: OpEquals}
}

func (fb *FilterBuilder) blankGroup() GroupState {
	return GroupState{
		ID:         fb.nextID(),
		Operator:   And,
		Conditions: []ConditionState{fb.blankCondition()},
	}
}

func (fb FilterBuilder) clone() FilterBuilder {
	out := fb
	out.groups = make([]GroupState, len(fb.groups))
	for idx, grp := range fb.groups {
		grp.Conditions = append([]ConditionState{}, grp.Conditions...)
		out.groups[idx] = grp
	}
	return out
}

func (fb FilterBuilder) groupIndex(id int) int {
	for idx, grp := range fb.groups {
		if grp.ID == id {
			return idx
		}
	}
	return -1
}

func (fb FilterBuilder) condition(groupID, condID int) (int, int) {
	gIdx := fb.groupIndex(groupID)
	if gIdx < 0 {
		return -1, -1
	}
	for cIdx, cond := range fb.groups[gIdx].Conditions {
		if cond.ID == condID {
			return gIdx, cIdx
		}
	}
	return -1, -1
}

// Update applies one edit. Edits addressing unknown groups or conditions, or
// asking for something the rules forbid, leave the state as it was.
func (fb FilterBuilder) Update(msg FilterMsg) FilterBuilder {
	next := fb.clone()
	switch m := msg.(type) {

	case AddGroupMsg:
		next.groups = append(next.groups, next.blankGroup())

	case RemoveGroupMsg:
		gIdx := next.groupIndex(m.Group)
		if gIdx < 0 {
			return fb
		}
		if len(next.groups) <= 1 {
			fb.env.Logger.Debugf("refusing to remove the last filter group")
			return fb
		}
		next.groups = append(next.groups[:gIdx], next.groups[gIdx+1:]...)

	case SetGroupOperatorMsg:
		gIdx := next.groupIndex(m.Group)
		op, err := ParseCombinator(string(m.Operator))
		if gIdx < 0 || err != nil {
			return fb
		}
		next.groups[gIdx].Operator = op

	case AddConditionMsg:
		gIdx := next.groupIndex(m.Group)
		if gIdx < 0 {
			return fb
		}
		next.groups[gIdx].Conditions = append(next.groups[gIdx].Conditions, next.blankCondition())

	case RemoveConditionMsg:
		gIdx, cIdx := next.condition(m.Group, m.Condition)
		if cIdx < 0 || len(next.groups[gIdx].Conditions) <= 1 {
			return fb
		}
		conds := next.groups[gIdx].Conditions
		next.groups[gIdx].Conditions = append(conds[:cIdx], conds[cIdx+1:]...)

	case SetFieldMsg:
		gIdx, cIdx := next.condition(m.Group, m.Condition)
		if cIdx < 0 {
			return fb
		}
		if !next.setField(&next.groups[gIdx].Conditions[cIdx], m.FieldKey) {
			return fb
		}

	case SetOperatorMsg:
		gIdx, cIdx := next.condition(m.Group, m.Condition)
		if cIdx < 0 {
			return fb
		}
		cond := &next.groups[gIdx].Conditions[cIdx]
		if !m.Operator.AllowedFor(next.fieldType(cond.FieldKey)) {
			return fb
		}
		cond.Operator = m.Operator
		if !cond.Operator.NeedsValue() {
			cond.Value = ""
		}

	case SetValueMsg:
		gIdx, cIdx := next.condition(m.Group, m.Condition)
		if cIdx < 0 {
			return fb
		}
		next.groups[gIdx].Conditions[cIdx].Value = m.Value

	case SetPromptMsg:
		gIdx, cIdx := next.condition(m.Group, m.Condition)
		if cIdx < 0 {
			return fb
		}
		cond := &next.groups[gIdx].Conditions[cIdx]
		if !m.Prompt {
			cond.Prompt = false
			cond.PromptID = ""
			cond.PromptLabel = ""
			break
		}
		cond.Prompt = true
		cond.PromptLabel = m.Label
		cond.Value = ""
		if cond.PromptID == "" {
			cond.PromptID = next.env.NewID()
		}
	}
	return next
}

// fieldType is empty for a condition without a field, which restricts its
// operators to the common set.
func (fb FilterBuilder) fieldType(key string) FieldType {
	if key == "" {
		return ""
	}
	fld, _ := fb.env.Catalog.FieldByKey(key)
	return fld.Type
}

func (fb FilterBuilder) setField(cond *ConditionState, key string) bool {
	if key == "" {
		*cond = ConditionState{ID: cond.ID, Operator: OpEquals}
		return true
	}
	fld, ok := fb.env.Catalog.FieldByKey(key)
	if !ok {
		fb.env.Logger.Warnf("Filter field %q not found in catalog", key)
		return false
	}
	prevType := fb.fieldType(cond.FieldKey)
	cond.FieldKey = key
	if !cond.Operator.AllowedFor(fld.Type) {
		cond.Operator = OpEquals
	}
	if prevType != fld.Type {
		cond.Value = ""
	}
	return true
}

// Groups returns a copy of the current groups.
func (fb FilterBuilder) Groups() []GroupState {
	return fb.clone().groups
}

// Serialize renders the state as filter_data groups. Conditions without a
// field are left out, and so is any group left with no conditions.
func (fb FilterBuilder) Serialize() []FilterGroup {
	out := []FilterGroup{}
	for _, grp := range fb.groups {
		fg := FilterGroup{Operator: grp.Operator, Conditions: []FilterCondition{}}
		for _, cond := range grp.Conditions {
			fc, ok := fb.serializeCondition(cond)
			if ok {
				fg.Conditions = append(fg.Conditions, fc)
			}
		}
		if len(fg.Conditions) > 0 {
			out = append(out, fg)
		}
	}
	return out
}

func (fb FilterBuilder) serializeCondition(cond ConditionState) (FilterCondition, bool) {
	if cond.FieldKey == "" {
		return FilterCondition{}, false
	}
	fld, ok := fb.env.Catalog.FieldByKey(cond.FieldKey)
	if !ok {
		return FilterCondition{}, false
	}
	fc := FilterCondition{Field: fld.Name, Operator: cond.Operator}
	if !cond.Operator.NeedsValue() {
		return fc, true
	}
	if cond.Prompt {
		fc.Prompt = cond.PromptLabel
		if fc.Prompt == "" {
			fc.Prompt = fld.DisplayName()
		}
		fc.PromptID = cond.PromptID
		return fc, true
	}
	fc.Value = cond.Value
	return fc, true
}

// Validate coerces every fixed value to its field's type.
func (fb FilterBuilder) Validate() ValidationErrors {
	var errs ValidationErrors
	for gIdx, grp := range fb.groups {
		for cIdx, cond := range grp.Conditions {
			if cond.FieldKey == "" || cond.Prompt {
				continue
			}
			fld, ok := fb.env.Catalog.FieldByKey(cond.FieldKey)
			if !ok {
				continue
			}
			_, err := CoerceOperand(fld.Type, cond.Operator, cond.Value)
			if err != nil {
				input := fmt.Sprintf("%s.%d.%d", InputFilterData, gIdx, cIdx)
				errs.Add(input, "%s: %s", fld.DisplayName(), err.Error())
			}
		}
	}
	return errs
}

type ConditionView struct {
	ID          int          `json:"id"`
	FieldKey    string       `json:"field"`
	Operators   []Operator   `json:"operators"`
	Operator    Operator     `json:"operator"`
	Control     ValueControl `json:"control,omitempty"`
	ShowValue   bool         `json:"show_value"`
	Choices     []string     `json:"choices,omitempty"`
	Value       string       `json:"value"`
	Prompt      bool         `json:"prompt"`
	PromptLabel string       `json:"prompt_label,omitempty"`
	PromptID    string       `json:"prompt_id,omitempty"`
}

type GroupView struct {
	ID                 int             `json:"id"`
	Operator           Combinator      `json:"operator"`
	Conditions         []ConditionView `json:"conditions"`
	CanRemoveCondition bool            `json:"can_remove_condition"`
}

type FilterView struct {
	Fields         []Category  `json:"fields"`
	Groups         []GroupView `json:"groups"`
	CanRemoveGroup bool        `json:"can_remove_group"`
}

func (fb FilterBuilder) View() FilterView {
	view := FilterView{
		Fields:         fb.env.Catalog.Visible("", nil),
		CanRemoveGroup: len(fb.groups) > 1,
	}
	for _, grp := range fb.groups {
		gv := GroupView{
			ID:                 grp.ID,
			Operator:           grp.Operator,
			CanRemoveCondition: len(grp.Conditions) > 1,
		}
		for _, cond := range grp.Conditions {
			typ := fb.fieldType(cond.FieldKey)
			cv := ConditionView{
				ID:          cond.ID,
				FieldKey:    cond.FieldKey,
				Operators:   OperatorsFor(typ),
				Operator:    cond.Operator,
				Value:       cond.Value,
				Prompt:      cond.Prompt,
				PromptLabel: cond.PromptLabel,
				PromptID:    cond.PromptID,
			}
			if typ != "" {
				cv.Control = ValueControlFor(typ, cond.Operator)
			}
			cv.ShowValue = cv.Control != VCNone
			if cv.Control == VCBoolean {
				cv.Choices = BooleanChoices
			}
			gv.Conditions = append(gv.Conditions, cv)
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}
