package repwizard

// ModalResponse is the envelope of modal create/edit flows. When the form is
// valid the page reloads; otherwise HTMLForm replaces the modal body.
type ModalResponse struct {
	FormIsValid bool                `json:"form_is_valid"`
	HTMLForm    string              `json:"html_form,omitempty"`
	Hidden      map[string][]string `json:"hidden,omitempty"`
}
