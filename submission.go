package repwizard

import (
	"net/url"

	"github.com/pkg/errors"
)

// Hidden inputs the wizard posts back to the report backend.
const (
	InputSelectedFields = "selected_fields"
	InputFilterData     = "filter_data"
	InputSortData       = "sort_data"
)

// Submission is everything the wizard has collected, in wire form.
type Submission struct {
	SelectedFields []string            `json:"selected_fields" yaml:"selected_fields" msgpack:"selected_fields"`
	Filters        []FilterGroup       `json:"filter_data" yaml:"filter_data" msgpack:"filter_data"`
	Sort           []SortEntry         `json:"sort_data" yaml:"sort_data" msgpack:"sort_data"`
	Presentation   PresentationOptions `json:"presentation" yaml:"presentation" msgpack:"presentation"`
}

func (sub Submission) Encode() (url.Values, error) {
	values := sub.Presentation.Encode()
	for _, key := range sub.SelectedFields {
		values.Add(InputSelectedFields, key)
	}
	filterData, err := EncodeFilterData(sub.Filters)
	if err != nil {
		return nil, err
	}
	values.Set(InputFilterData, filterData)
	sortData, err := EncodeSortData(sub.Sort)
	if err != nil {
		return nil, err
	}
	values.Set(InputSortData, sortData)
	return values, nil
}

// DecodeSubmission reads hidden inputs back. Missing inputs decode as empty;
// presentation inputs are taken as posted, without gating.
func DecodeSubmission(values url.Values) (Submission, error) {
	var sub Submission
	var err error
	sub.SelectedFields = append(sub.SelectedFields, values[InputSelectedFields]...)
	for _, key := range sub.SelectedFields {
		if _, _, err = ParseFieldKey(key); err != nil {
			return Submission{}, errors.Wrapf(err, "invalid %s", InputSelectedFields)
		}
	}
	sub.Filters, err = DecodeFilterData(values.Get(InputFilterData))
	if err != nil {
		return Submission{}, err
	}
	sub.Sort, err = DecodeSortData(values.Get(InputSortData))
	if err != nil {
		return Submission{}, err
	}
	if values.Has(InputTitle) {
		sub.Presentation, _ = ParsePresentation(&Catalog{}, values)
	}
	return sub, nil
}
