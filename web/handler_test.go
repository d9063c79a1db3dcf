package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"radiochild/repwizard"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := repwizard.NewCatalog([]repwizard.Category{
		{Name: "People", Fields: []repwizard.FieldSpec{
			{Name: "name", Type: repwizard.FTString, Label: "Name"},
			{Name: "age", Type: repwizard.FTNumber, Label: "Age"},
			{Name: "active", Type: repwizard.FTBoolean},
		}},
	})
	require.NoError(t, err)
	logger := zaptest.NewLogger(t).Sugar()
	srv := httptest.NewServer(NewRouter(NewHandler(repwizard.NewEnv(cat, logger), logger)))
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  errorPayload    `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func csrfCookie(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, err = http.Get(srv.URL + "/api/v1/catalog")
	require.NoError(t, err)
	resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("no csrf cookie issued")
	return nil
}

func postStep(t *testing.T, srv *httptest.Server, step string, form url.Values, cookie *http.Cookie, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/wizard/"+step, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if token != "" {
		req.Header.Set(CSRFHeaderName, token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCatalogQuery(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/catalog?q=ag")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cats []repwizard.Category
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &cats))
	require.Len(t, cats, 1)
	require.Len(t, cats[0].Fields, 1)
	assert.Equal(t, "age", cats[0].Fields[0].Name)
}

func TestOperators(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/operators/boolean")
	require.NoError(t, err)

	var infos []operatorInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, repwizard.OpEquals, infos[0].Operator)
	assert.Equal(t, []string{"True", "False"}, infos[0].Choices)
	assert.False(t, infos[2].NeedsValue)
	assert.Empty(t, infos[2].Control)

	resp, err = http.Get(srv.URL + "/api/v1/operators/blob")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown_field_type", decodeEnvelope(t, resp).Error.Code)
}

func TestViewStep(t *testing.T) {
	srv := newTestServer(t)

	q := url.Values{repwizard.InputSelectedFields: {"age:number"}, "q": {"name"}}
	resp, err := http.Get(srv.URL + "/api/v1/wizard/fields?" + q.Encode())
	require.NoError(t, err)
	var sel repwizard.SelectorView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &sel))
	assert.Equal(t, "name", sel.Query)
	require.Len(t, sel.Selected, 1)
	require.Len(t, sel.Available, 1)
	assert.Len(t, sel.Available[0].Fields, 1)

	resp, err = http.Get(srv.URL + "/api/v1/wizard/presentation?title=Staff")
	require.NoError(t, err)
	var pv presentationView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &pv))
	assert.Equal(t, "Staff", pv.Options.Title)
	assert.Equal(t, []string{repwizard.InputChartType, repwizard.InputChartField}, pv.Hidden)

	resp, err = http.Get(srv.URL + "/api/v1/wizard/checkout")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/wizard/filters?filter_data=%7B")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmitStepRequiresCSRF(t *testing.T) {
	srv := newTestServer(t)
	form := url.Values{repwizard.InputSelectedFields: {"age:number"}}

	resp := postStep(t, srv, "fields", form, nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "csrf_failed", decodeEnvelope(t, resp).Error.Code)

	cookie := csrfCookie(t, srv)
	resp = postStep(t, srv, "fields", form, cookie, "wrong")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmitStep(t *testing.T) {
	srv := newTestServer(t)
	cookie := csrfCookie(t, srv)

	resp := postStep(t, srv, "filters", url.Values{
		repwizard.InputFilterData: {`[{"operator":"AND","conditions":[{"field":"age","operator":"greater_than","value":"30"},{"field":"","operator":"equals","value":""}]}]`},
	}, cookie, cookie.Value)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var modal repwizard.ModalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&modal))
	resp.Body.Close()
	assert.True(t, modal.FormIsValid)
	assert.JSONEq(t,
		`[{"operator":"AND","conditions":[{"field":"age","operator":"greater_than","value":"30"}]}]`,
		modal.Hidden[repwizard.InputFilterData][0])

	resp = postStep(t, srv, "filters", url.Values{
		repwizard.InputFilterData: {`[{"operator":"AND","conditions":[{"field":"age","operator":"less_than","value":"young"}]}]`},
	}, cookie, cookie.Value)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	modal = repwizard.ModalResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&modal))
	resp.Body.Close()
	assert.False(t, modal.FormIsValid)
	assert.Contains(t, modal.HTMLForm, `data-input="filter_data.0.0"`)
	assert.Contains(t, modal.HTMLForm, `name="filter_data"`)
	assert.Empty(t, modal.Hidden)
}

func TestDetectStep(t *testing.T) {
	srv := newTestServer(t)
	cookie := csrfCookie(t, srv)

	detect := func(page string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/wizard/detect", strings.NewReader(page))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "text/html")
		req.AddCookie(cookie)
		req.Header.Set(CSRFHeaderName, cookie.Value)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := detect(`<nav><a class="step" title="Fields"></a><a class="step active" title="Sort Order"></a></nav>`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got detectedStep
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &got))
	assert.Equal(t, "sort", got.Step)

	resp = detect(`<nav><a class="step" title="Fields"></a></nav>`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "step_not_detected", decodeEnvelope(t, resp).Error.Code)
}
