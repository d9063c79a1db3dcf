package repwizard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	reptext "github.com/radiochild/utils/text"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", errors.Errorf("unknown sort direction %q", s)
}

type SortEntry struct {
	Field     string    `json:"field" yaml:"field" msgpack:"field"`
	Direction Direction `json:"direction" yaml:"direction" msgpack:"direction"`
}

func (se SortEntry) String() string {
	return fmt.Sprintf("%s %s", se.Field, se.Direction)
}

func EncodeSortData(entries []SortEntry) (string, error) {
	if entries == nil {
		entries = []SortEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal sort data")
	}
	return string(data), nil
}

func DecodeSortData(s string) ([]SortEntry, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var entries []SortEntry
	err := json.Unmarshal([]byte(s), &entries)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal sort data")
	}
	for idx := range entries {
		dir, err := ParseDirection(string(entries[idx].Direction))
		if err != nil {
			return nil, errors.Wrapf(err, "sort entry %d", idx+1)
		}
		entries[idx].Direction = dir
	}
	return entries, nil
}

type sortState struct {
	fld FieldSpec
	dir Direction
}

// SortBuilder holds the ordered sort list and the pool of fields that can
// still be dragged into it. A field is either in the pool or in the list,
// never both.
type SortBuilder struct {
	env     *Env
	pool    []FieldSpec
	entries []sortState
}

type SortMsg interface {
	sortMsg()
}

// AddSortMsg drops a pool field into the list at Index; an out of range
// index appends.
type AddSortMsg struct {
	FieldKey string
	Index    int
}

type RemoveSortMsg struct {
	FieldKey string
}

type SetDirectionMsg struct {
	FieldKey  string
	Direction Direction
}

type MoveSortMsg struct {
	From int
	To   int
}

func (AddSortMsg) sortMsg()      {}
func (RemoveSortMsg) sortMsg()   {}
func (SetDirectionMsg) sortMsg() {}
func (MoveSortMsg) sortMsg()     {}

// NewSortBuilder mounts the builder over pool (the whole catalog when nil)
// with an initial order. Initial entries naming unknown or repeated fields
// are dropped.
func NewSortBuilder(env *Env, pool []FieldSpec, initial []SortEntry) SortBuilder {
	if pool == nil {
		pool = env.Catalog.Fields()
	}
	sb := SortBuilder{env: env, pool: append([]FieldSpec{}, pool...)}
	for _, entry := range initial {
		fld, ok := sb.poolNamed(entry.Field)
		if !ok {
			env.Logger.Warnf("Sort field named %q not available", entry.Field)
			continue
		}
		if sb.indexOf(fld.Key()) >= 0 {
			env.Logger.Warnf("Sort field named %q repeated", entry.Field)
			continue
		}
		dir, err := ParseDirection(string(entry.Direction))
		if err != nil {
			dir = Asc
		}
		sb.entries = append(sb.entries, sortState{fld: fld, dir: dir})
	}
	return sb
}

func (sb SortBuilder) poolNamed(name string) (FieldSpec, bool) {
	for _, fld := range sb.pool {
		if fld.Name == name {
			return fld, true
		}
	}
	return FieldSpec{}, false
}

func (sb SortBuilder) poolKeyed(key string) (FieldSpec, bool) {
	for _, fld := range sb.pool {
		if fld.Key() == key {
			return fld, true
		}
	}
	return FieldSpec{}, false
}

func (sb SortBuilder) indexOf(key string) int {
	for idx, entry := range sb.entries {
		if entry.fld.Key() == key {
			return idx
		}
	}
	return -1
}

func (sb SortBuilder) Update(msg SortMsg) SortBuilder {
	next := sb
	next.entries = append([]sortState{}, sb.entries...)

	switch m := msg.(type) {

	case AddSortMsg:
		fld, ok := next.poolKeyed(m.FieldKey)
		if !ok || next.indexOf(m.FieldKey) >= 0 {
			return sb
		}
		entry := sortState{fld: fld, dir: Asc}
		idx := m.Index
		if idx < 0 || idx > len(next.entries) {
			idx = len(next.entries)
		}
		next.entries = append(next.entries, sortState{})
		copy(next.entries[idx+1:], next.entries[idx:])
		next.entries[idx] = entry

	case RemoveSortMsg:
		idx := next.indexOf(m.FieldKey)
		if idx < 0 {
			return sb
		}
		next.entries = append(next.entries[:idx], next.entries[idx+1:]...)

	case SetDirectionMsg:
		idx := next.indexOf(m.FieldKey)
		dir, err := ParseDirection(string(m.Direction))
		if idx < 0 || err != nil {
			return sb
		}
		next.entries[idx].dir = dir

	case MoveSortMsg:
		moved, ok := moveItem(next.entries, m.From, m.To)
		if !ok {
			return sb
		}
		next.entries = moved
	}
	return next
}

// moveItem relocates items[from] to position to, shifting the rest.
func moveItem[T any](items []T, from, to int) ([]T, bool) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return items, false
	}
	item := items[from]
	out := append([]T{}, items[:from]...)
	out = append(out, items[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, true
}

// Available lists pool fields not yet in the sort order.
func (sb SortBuilder) Available() []FieldSpec {
	keys := []string{}
	for _, entry := range sb.entries {
		keys = append(keys, entry.fld.Key())
	}
	used := reptext.FromStrings(keys)
	avail := []FieldSpec{}
	for _, fld := range sb.pool {
		if !used.Contains(fld.Key()) {
			avail = append(avail, fld)
		}
	}
	return avail
}

// Serialize renders the order as sort_data entries, in list order.
func (sb SortBuilder) Serialize() []SortEntry {
	out := []SortEntry{}
	for _, entry := range sb.entries {
		out = append(out, SortEntry{Field: entry.fld.Name, Direction: entry.dir})
	}
	return out
}

type SortEntryView struct {
	FieldKey   string    `json:"field"`
	Label      string    `json:"label"`
	Direction  Direction `json:"direction"`
	AscActive  bool      `json:"asc_active"`
	DescActive bool      `json:"desc_active"`
}

type SortView struct {
	Available []FieldSpec     `json:"available"`
	Entries   []SortEntryView `json:"entries"`
}

func (sb SortBuilder) View() SortView {
	view := SortView{Available: sb.Available(), Entries: []SortEntryView{}}
	for _, entry := range sb.entries {
		view.Entries = append(view.Entries, SortEntryView{
			FieldKey:   entry.fld.Key(),
			Label:      entry.fld.DisplayName(),
			Direction:  entry.dir,
			AscActive:  entry.dir == Asc,
			DescActive: entry.dir == Desc,
		})
	}
	return view
}
