package web

import (
	"bytes"
	"html/template"
	"net/url"
	"sort"

	"radiochild/repwizard"
)

var stepFormTemplate = template.Must(template.New("step").Parse(
	`<form method="post" class="wizard-step-form" data-step="{{.Step}}">
{{- if .Errors}}
<ul class="errorlist">
{{- range .Errors}}
<li data-input="{{.Input}}">{{.Message}}</li>
{{- end}}
</ul>
{{- end}}
{{- range .Hidden}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
</form>
`))

type hiddenInput struct {
	Name  string
	Value string
}

type stepForm struct {
	Step   string
	Errors repwizard.ValidationErrors
	Hidden []hiddenInput
}

// renderStepForm re-renders a rejected step: its errors, and the posted
// values as hidden inputs so nothing typed is lost.
func renderStepForm(kind repwizard.StepKind, errs repwizard.ValidationErrors, values url.Values) (string, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	form := stepForm{Step: kind.String(), Errors: errs}
	for _, name := range names {
		for _, val := range values[name] {
			form.Hidden = append(form.Hidden, hiddenInput{Name: name, Value: val})
		}
	}

	var buf bytes.Buffer
	if err := stepFormTemplate.Execute(&buf, form); err != nil {
		return "", err
	}
	return buf.String(), nil
}
