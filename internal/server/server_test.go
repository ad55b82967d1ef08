package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechsolver/internal/catalog"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(catalog.NewRegistry(), opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestListFormulas(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodGet, ts.URL+"/api/v1/formulas", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []formulaView
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, len(catalog.NewRegistry().All()), len(all))

	resp, body = do(t, http.MethodGet, ts.URL+"/api/v1/formulas?module=machine", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var machine []formulaView
	require.NoError(t, json.Unmarshal(body, &machine))
	require.Len(t, machine, 6)
	assert.Equal(t, "machine/gear_design", machine[0].ID)
}

func TestGetFormula(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodGet, ts.URL+"/api/v1/formulas/kinematics/projectile", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		ID     string           `json:"id"`
		Params []map[string]any `json:"params"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "kinematics/projectile", doc.ID)
	require.NotEmpty(t, doc.Params)
	assert.Equal(t, "velocity", doc.Params[0]["name"])
	assert.Equal(t, "scalar", doc.Params[0]["kind"])

	resp, _ = do(t, http.MethodGet, ts.URL+"/api/v1/formulas/kinematics/warp", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodPost, ts.URL+"/api/v1/calc/stress/normal_stress", `{"force": 2000, "area": "0.01"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc struct {
		Formula string             `json:"formula"`
		Result  map[string]float64 `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "stress/normal_stress", doc.Formula)
	assert.InDelta(t, 200000, doc.Result["stress"], 1e-6)
}

func TestCalculateEmptyBodyUsesDefaults(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodPost, ts.URL+"/api/v1/calc/thermo/carnot", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"efficiency":0.5`)
}

func TestCalculateKeepsOutputOrder(t *testing.T) {
	ts := newTestServer(t, Options{})

	_, body := do(t, http.MethodPost, ts.URL+"/api/v1/calc/fluids/reynolds", `{}`)
	s := string(body)
	assert.Less(t, strings.Index(s, "reynolds_number"), strings.Index(s, "flow_regime"))
}

func TestCalculateErrors(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"unknown formula", "stress/nope", `{}`, http.StatusNotFound, "not_found"},
		{"bad json", "stress/strain", `[1,2`, http.StatusBadRequest, "bad_request"},
		{"unknown param", "stress/strain", `{"torque": 1}`, http.StatusBadRequest, "bad_argument"},
		{"out of range", "kinematics/projectile", `{"angle": 120}`, http.StatusBadRequest, "out_of_range"},
		{"bad variant", "stress/beam_deflection", `{"load_type": "twisted"}`, http.StatusBadRequest, "invalid_variant"},
		{"combination", "kinematics/motion", `{"time": 2}`, http.StatusBadRequest, "invalid_combination"},
		{"domain", "thermo/carnot", `{"t_hot": 300, "t_cold": 400}`, http.StatusUnprocessableEntity, "domain"},
		{"unknown material", "materials/properties", `{"material": "UNOBTAINIUM"}`, http.StatusBadRequest, "invalid_variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+"/api/v1/calc/"+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))

			var e errorBody
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, tt.kind, e.Kind)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestListMaterials(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodGet, ts.URL+"/api/v1/materials", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mats []map[string]any
	require.NoError(t, json.Unmarshal(body, &mats))
	assert.Len(t, mats, 3)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, http.MethodGet, ts.URL+"/api/v1/materials", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := do(t, http.MethodGet, ts.URL+"/api/v1/materials", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(body), "rate_limited")

	// Health and metrics are not limited.
	resp, _ = do(t, http.MethodGet, ts.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "mechsolver_rate_limited_total 1")
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, Options{})

	do(t, http.MethodPost, ts.URL+"/api/v1/calc/thermo/carnot", `{}`)
	do(t, http.MethodPost, ts.URL+"/api/v1/calc/thermo/carnot", `{"t_hot": 1, "t_cold": 2}`)

	_, body := do(t, http.MethodGet, ts.URL+"/metrics", "")
	s := string(body)
	assert.Contains(t, s, `mechsolver_calculations_total{formula="thermo/carnot",outcome="ok"} 1`)
	assert.Contains(t, s, `mechsolver_calculations_total{formula="thermo/carnot",outcome="domain"} 1`)
	assert.Contains(t, s, `mechsolver_http_requests_total{code="200",route="/api/v1/calc/{module}/{name}"} 1`)
	assert.Contains(t, s, "mechsolver_calculation_duration_seconds_bucket")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientIP(r))

	r.RemoteAddr = "garbage"
	assert.Equal(t, "garbage", clientIP(r))
}
