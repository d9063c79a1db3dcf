package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"radiochild/repwizard"
)

type operatorInfo struct {
	Operator   repwizard.Operator     `json:"operator"`
	Label      string                 `json:"label"`
	NeedsValue bool                   `json:"needs_value"`
	Control    repwizard.ValueControl `json:"control,omitempty"`
	Choices    []string               `json:"choices,omitempty"`
}

type presentationView struct {
	Options      repwizard.PresentationOptions `json:"options"`
	Constraints  []repwizard.Constraint        `json:"constraints"`
	Conditionals []repwizard.ConditionalField  `json:"conditionals"`
	Hidden       []string                      `json:"hidden"`
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeSuccess(w, http.StatusOK, "", h.env.Catalog.Visible(query, nil))
}

func (h *Handler) getOperators(w http.ResponseWriter, r *http.Request) {
	typ, err := repwizard.ToFieldType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_field_type", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	infos := []operatorInfo{}
	for _, op := range repwizard.OperatorsFor(typ) {
		info := operatorInfo{
			Operator:   op,
			Label:      op.Phrase(),
			NeedsValue: op.NeedsValue(),
			Control:    repwizard.ValueControlFor(typ, op),
		}
		if info.Control == repwizard.VCBoolean {
			info.Choices = repwizard.BooleanChoices
		}
		infos = append(infos, info)
	}
	writeSuccess(w, http.StatusOK, "", infos)
}

func (h *Handler) stepFor(w http.ResponseWriter, r *http.Request, values map[string][]string) (repwizard.Step, bool) {
	kind, err := repwizard.ParseStepKind(chi.URLParam(r, "step"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_step", err.Error(), requestIDFromContext(r.Context()))
		return nil, false
	}
	step, err := repwizard.InitStepFromForm(h.env, kind, values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", err.Error(), requestIDFromContext(r.Context()))
		return nil, false
	}
	return step, true
}

// viewStep mounts a step from hidden values in the query string and returns
// its view model.
func (h *Handler) viewStep(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	step, ok := h.stepFor(w, r, values)
	if !ok {
		return
	}
	switch st := step.(type) {
	case repwizard.FieldSelector:
		st = st.Update(repwizard.FilterFieldsMsg{Query: values.Get("q")})
		writeSuccess(w, http.StatusOK, "", st.View())
	case repwizard.FilterBuilder:
		writeSuccess(w, http.StatusOK, "", st.View())
	case repwizard.SortBuilder:
		writeSuccess(w, http.StatusOK, "", st.View())
	case repwizard.PresentationStep:
		opts, _ := st.Options()
		form := repwizard.PresentationForm(h.env.Catalog)
		view := presentationView{
			Options:      opts,
			Constraints:  form.Constraints,
			Conditionals: form.Conditionals,
			Hidden:       []string{},
		}
		for _, c := range form.Constraints {
			if form.Hidden(c.Name, values) {
				view.Hidden = append(view.Hidden, c.Name)
			}
		}
		writeSuccess(w, http.StatusOK, "", view)
	}
}

// submitStep gates a posted step. Valid steps answer with their canonical
// hidden inputs; invalid ones with a re-rendered form.
func (h *Handler) submitStep(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	step, ok := h.stepFor(w, r, r.PostForm)
	if !ok {
		return
	}

	values, err := repwizard.SubmitStep(step)
	var errs repwizard.ValidationErrors
	if errors.As(err, &errs) {
		h.logger.Infow("wizard step rejected", "step", step.Kind().String(), "errors", len(errs), "request_id", requestIDFromContext(r.Context()))
		htmlForm, err := renderStepForm(step.Kind(), errs, r.PostForm)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed", err.Error(), requestIDFromContext(r.Context()))
			return
		}
		writeJSON(w, http.StatusOK, repwizard.ModalResponse{FormIsValid: false, HTMLForm: htmlForm})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode_failed", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, repwizard.ModalResponse{FormIsValid: true, Hidden: values})
}

// maxPageBytes caps the wizard page accepted by detectStep.
const maxPageBytes = 1 << 20

type detectedStep struct {
	Step string `json:"step"`
}

// detectStep reads a posted wizard page and reports which step is active.
func (h *Handler) detectStep(w http.ResponseWriter, r *http.Request) {
	kind, err := repwizard.DetectStep(http.MaxBytesReader(w, r.Body, maxPageBytes))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "step_not_detected", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", detectedStep{Step: kind.String()})
}
