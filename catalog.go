package repwizard

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Category struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Catalog is the grouped list of available fields a report can draw from.
// It is built once and treated as read-only afterwards.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`

	byKey map[string]*FieldSpec
}

// NewCatalog normalizes field types, stamps each field with its category and
// indexes it by key. filter_data and sort_data name fields without their
// type, so a name may appear only once across the whole catalog.
func NewCatalog(categories []Category) (*Catalog, error) {
	cat := &Catalog{byKey: map[string]*FieldSpec{}}
	for _, c := range categories {
		norm := Category{Name: c.Name}
		for _, fld := range c.Fields {
			if fld.Name == "" {
				return nil, errors.Errorf("field without a name in category %q", c.Name)
			}
			typ, err := ToFieldType(string(fld.Type))
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", fld.Name)
			}
			fld.Type = typ
			fld.Category = c.Name
			norm.Fields = append(norm.Fields, fld)
		}
		cat.Categories = append(cat.Categories, norm)
	}
	byName := map[string]string{}
	for ci := range cat.Categories {
		for fi := range cat.Categories[ci].Fields {
			pFld := &cat.Categories[ci].Fields[fi]
			key := pFld.Key()
			if prev, ok := byName[pFld.Name]; ok {
				return nil, errors.Errorf("duplicate field name %q in catalog (%s and %s)", pFld.Name, prev, key)
			}
			byName[pFld.Name] = key
			cat.byKey[key] = pFld
		}
	}
	return cat, nil
}

func (cat *Catalog) String() string {
	var lines []string
	for _, c := range cat.Categories {
		lines = append(lines, fmt.Sprintf("%s:", c.Name))
		for _, fld := range c.Fields {
			lines = append(lines, "  "+fld.String())
		}
	}
	return strings.Join(lines, "\n")
}

// Fields lists every field in catalog order.
func (cat *Catalog) Fields() []FieldSpec {
	var all []FieldSpec
	for _, c := range cat.Categories {
		all = append(all, c.Fields...)
	}
	return all
}

func (cat *Catalog) FieldByKey(key string) (FieldSpec, bool) {
	pFld, ok := cat.byKey[key]
	if !ok {
		return FieldSpec{}, false
	}
	return *pFld, true
}

// FieldNamed returns the first field with the given name.
func (cat *Catalog) FieldNamed(name string) (FieldSpec, bool) {
	for _, c := range cat.Categories {
		for _, fld := range c.Fields {
			if fld.Name == name {
				return fld, true
			}
		}
	}
	return FieldSpec{}, false
}

// Visible returns the categories restricted to fields matching query and not
// rejected by exclude. Empty categories are omitted.
func (cat *Catalog) Visible(query string, exclude func(FieldSpec) bool) []Category {
	var out []Category
	for _, c := range cat.Categories {
		vis := Category{Name: c.Name}
		for _, fld := range c.Fields {
			if !fld.Matches(query) {
				continue
			}
			if exclude != nil && exclude(fld) {
				continue
			}
			vis.Fields = append(vis.Fields, fld)
		}
		if len(vis.Fields) > 0 {
			out = append(out, vis)
		}
	}
	return out
}
