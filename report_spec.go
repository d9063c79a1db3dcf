package repwizard

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ------------------------------------------------------------
// A composed report definition, as the wizard would post it:
//   name, description
//   fields:       ["age:number", "name:string"]
//   filters:      filter_data groups
//   sort:         sort_data entries
//   presentation: title, chart and paging options
// ------------------------------------------------------------

type ReportSpec struct {
	Name         string              `json:"name" yaml:"name" msgpack:"name"`
	Description  string              `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	Fields       []string            `json:"fields" yaml:"fields" msgpack:"fields"`
	Filters      []FilterGroup       `json:"filters" yaml:"filters" msgpack:"filters"`
	Sort         []SortEntry         `json:"sort" yaml:"sort" msgpack:"sort"`
	Presentation PresentationOptions `json:"presentation" yaml:"presentation" msgpack:"presentation"`
}

func ReadReportSpec(filename string) (*ReportSpec, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read from %s", filename)
	}

	var spec ReportSpec
	if isYAMLName(filename) {
		err = yaml.Unmarshal(file, &spec)
	} else {
		err = json.Unmarshal(file, &spec)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", filename)
	}
	return &spec, nil
}

func (spec *ReportSpec) Submission() Submission {
	return Submission{
		SelectedFields: spec.Fields,
		Filters:        spec.Filters,
		Sort:           spec.Sort,
		Presentation:   spec.Presentation,
	}
}

// Resolve runs the report through each wizard step as if a user had mounted
// and submitted it, returning the normalized spec. Entries the steps drop
// (unknown fields, empty conditions, repeated sorts) are gone from the
// result; invalid values are reported.
func (spec *ReportSpec) Resolve(env *Env) (*ReportSpec, error) {
	sub := spec.Submission()
	var errs ValidationErrors

	selector := NewFieldSelector(env, sub.SelectedFields)
	errs = append(errs, selector.Validate()...)
	filters := NewFilterBuilder(env, sub.Filters)
	errs = append(errs, filters.Validate()...)
	sorts := NewSortBuilder(env, nil, sub.Sort)

	presentation := PresentationStep{env: env, values: sub.Presentation.Encode()}
	opts, presErrs := presentation.Options()
	errs = append(errs, presErrs...)

	if err := errs.Err(); err != nil {
		return nil, errors.Wrapf(err, "report %q", spec.Name)
	}
	return &ReportSpec{
		Name:         spec.Name,
		Description:  spec.Description,
		Fields:       selector.HiddenInputs(),
		Filters:      filters.Serialize(),
		Sort:         sorts.Serialize(),
		Presentation: opts,
	}, nil
}

func ShowReportSpec(spec *ReportSpec, logger *zap.SugaredLogger) {
	logger.Infof("Report %q", spec.Name)
	if spec.Description != "" {
		logger.Infof("%s", spec.Description)
	}

	logger.Infof("")
	logger.Infof("Fields:")
	logger.Infof("%v", spec.Fields)

	logger.Infof("")
	logger.Infof("Filters:")
	for _, lx := range strings.Split(SummarizeFilters(spec.Filters), "\n") {
		logger.Infof("%s", lx)
	}

	logger.Infof("")
	logger.Infof("Sort:")
	logger.Infof("%s", SummarizeSort(spec.Sort))

	logger.Infof("")
	logger.Infof("Presentation:")
	logger.Infof("%+v", spec.Presentation)
}
