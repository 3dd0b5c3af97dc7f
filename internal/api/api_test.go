package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incubazar/venture-calc/internal/config"
	"github.com/incubazar/venture-calc/internal/export"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/resilience"
	"github.com/incubazar/venture-calc/internal/store"
	"github.com/incubazar/venture-calc/internal/unitecon"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{Port: 8080, CORSOrigins: []string{"*"}}
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	return New(nil, testServerConfig(), opts...).Routes()
}

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope unmarshals an envelope whose result is decoded into result.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, result any) string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env struct {
		CalculationID string          `json:"calculation_id"`
		Result        json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Result, result))
	return env.CalculationID
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

const runwayBody = `{
	"cash_in_bank": 100000,
	"monthly_revenue": 0,
	"monthly_expenses": {"salaries": 12000, "rent": 3000, "software": 1000, "marketing": 2500, "cogs": 1000, "other": 500}
}`

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","history":"disabled"}`, rec.Body.String())
}

func TestRunway(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res struct {
		TotalMonthlyExpenses float64 `json:"total_monthly_expenses"`
		RunwayMonths         float64 `json:"runway_months"`
		RunwayStatus         string  `json:"runway_status"`
		ProjectionData       []any   `json:"projection_data"`
	}
	id := decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/runway", runwayBody), &res)
	assert.Empty(t, id)
	assert.InDelta(t, 20000, res.TotalMonthlyExpenses, 1e-9)
	assert.InDelta(t, 5.0, res.RunwayMonths, 1e-9)
	assert.Equal(t, "warning", res.RunwayStatus)
	assert.Len(t, res.ProjectionData, 18)
}

func TestExtremeInputsAnswerFiniteJSON(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"runway", "/v1/runway", `{"cash_in_bank": 1e308, "monthly_expenses": {"salaries": 1e308, "rent": 1e308}}`},
		{"whatif", "/v1/runway/whatif", `{"inputs": {"monthly_expenses": {"salaries": 1e308}}, "scenario": {"type": "revenue_change", "impact": 1e308}}`},
		{"dilution", "/v1/equity/dilution", `{"current_ownership": 100, "pre_money_valuation": 1e308, "investment_amount": 1e308}`},
		{"valuation", "/v1/valuation", `{"industry": "SaaS", "funding_stage": "Seed", "mrr": 1e308}`},
		{"unit economics", "/v1/unit-economics", `{"ltv": {"arpu": 1e308, "gross_margin": 100, "avg_customer_lifespan": 1e308}, "cac": {"total_sales_marketing_spend": 1e308, "new_customers_acquired": 1e-300}}`},
		{"retention", "/v1/retention", `{"start_mrr": 1e-300, "end_mrr": 1e308}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.NotEmpty(t, rec.Body.Bytes())
			assert.True(t, json.Valid(rec.Body.Bytes()))
		})
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"value": math.Inf(1)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to encode response", errorMessage(t, rec))
}

func TestBadRequests(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		wantErr string
	}{
		{"empty body", "/v1/runway", "", http.StatusBadRequest, "request body is required"},
		{"malformed json", "/v1/valuation", `{"mrr":`, http.StatusBadRequest, "invalid request body"},
		{"wrong type", "/v1/equity/dilution", `{"pre_money_valuation":"lots"}`, http.StatusBadRequest, "invalid request body"},
		{
			"unknown scenario",
			"/v1/runway/whatif",
			`{"inputs":{"cash_in_bank":1000},"scenario":{"type":"pivot","impact":10}}`,
			http.StatusBadRequest,
			`unknown scenario type "pivot"`,
		},
		{
			"oversized body",
			"/v1/runway",
			`{"cash_in_bank": 1, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`,
			http.StatusRequestEntityTooLarge,
			"request body too large",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.wantErr)
		})
	}
}

func TestWhatIf(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	body := `{
		"inputs": {"cash_in_bank": 120000, "monthly_expenses": {"salaries": 20000}},
		"scenario": {"type": "new_hire", "description": "Senior engineer", "impact": 10000}
	}`
	var res struct {
		Baseline struct {
			RunwayMonths float64 `json:"runway_months"`
		} `json:"baseline"`
		Scenario struct {
			RunwayMonths float64 `json:"runway_months"`
		} `json:"scenario"`
		Difference float64 `json:"difference"`
	}
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/runway/whatif", body), &res)
	assert.InDelta(t, 6.0, res.Baseline.RunwayMonths, 1e-9)
	assert.InDelta(t, 4.0, res.Scenario.RunwayMonths, 1e-9)
	assert.InDelta(t, -2.0, res.Difference, 1e-9)
}

func TestEquityEndpoints(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var split struct {
		Founders []struct {
			Name             string  `json:"name"`
			EquityPercentage float64 `json:"equity_percentage"`
		} `json:"founders"`
	}
	body := `{"co_founders": [
		{"name": "Ada", "time_commitment": 100, "role_importance": 8, "ip_contribution": 5},
		{"name": "Grace", "time_commitment": 100, "role_importance": 8, "ip_contribution": 5}
	]}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/equity/split", body), &split)
	require.Len(t, split.Founders, 2)
	assert.InDelta(t, 50, split.Founders[0].EquityPercentage, 1e-9)
	assert.InDelta(t, 50, split.Founders[1].EquityPercentage, 1e-9)

	var dil struct {
		PostMoneyValuation float64 `json:"post_money_valuation"`
		NewOwnership       float64 `json:"new_ownership"`
		FutureRounds       []any   `json:"future_rounds"`
	}
	body = `{"current_ownership": 100, "pre_money_valuation": 4000000, "investment_amount": 1000000}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/equity/dilution", body), &dil)
	assert.InDelta(t, 5_000_000, dil.PostMoneyValuation, 1e-6)
	assert.InDelta(t, 80, dil.NewOwnership, 1e-9)
	assert.NotEmpty(t, dil.FutureRounds)
}

func TestValuation(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res struct {
		Method           string `json:"method"`
		RecommendedRange struct {
			Low  float64 `json:"low"`
			Mid  float64 `json:"mid"`
			High float64 `json:"high"`
		} `json:"recommended_range"`
		Narrative     string `json:"narrative"`
		NarrativeHTML string `json:"narrative_html"`
	}
	body := `{"industry": "SaaS", "funding_stage": "Seed", "mrr": 10000, "growth_rate": 120}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/valuation", body), &res)
	assert.Equal(t, "blended", res.Method)
	assert.InDelta(t, 1_224_000, res.RecommendedRange.Low, 1e-6)
	assert.InDelta(t, 1_546_000, res.RecommendedRange.Mid, 1e-6)
	assert.InDelta(t, 1_874_400, res.RecommendedRange.High, 1e-6)
	assert.Contains(t, res.Narrative, "**Valuation Rationale:**")
	assert.Contains(t, res.NarrativeHTML, "<strong>Valuation Rationale:</strong>")
}

func TestUnitEconomics(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res struct {
		LTV       float64              `json:"ltv"`
		CAC       float64              `json:"cac"`
		Ratio     float64              `json:"ratio"`
		Benchmark *unitecon.Comparison `json:"benchmark"`
	}
	body := `{
		"ltv": {"arpu": 100, "gross_margin": 80, "avg_customer_lifespan": 24},
		"cac": {"total_sales_marketing_spend": 64000, "new_customers_acquired": 100},
		"industry": "saas"
	}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/unit-economics", body), &res)
	assert.InDelta(t, 1920, res.LTV, 1e-9)
	assert.InDelta(t, 640, res.CAC, 1e-9)
	assert.InDelta(t, 3.0, res.Ratio, 1e-9)
	require.NotNil(t, res.Benchmark)
	assert.Equal(t, model.IndustrySaaS, res.Benchmark.Industry)

	body = `{
		"ltv": {"arpu": 100, "gross_margin": 80, "avg_customer_lifespan": 24},
		"cac": {"total_sales_marketing_spend": 64000, "new_customers_acquired": 100}
	}`
	res.Benchmark = nil
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/unit-economics", body), &res)
	assert.Nil(t, res.Benchmark)
}

func TestSensitivity(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res unitecon.SensitivityMatrix
	body := `{
		"ltv": {"arpu": 100, "gross_margin": 80, "avg_customer_lifespan": 24},
		"cac": {"total_sales_marketing_spend": 64000, "new_customers_acquired": 100}
	}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/unit-economics/sensitivity", body), &res)
	assert.Equal(t, unitecon.DefaultCACChanges, res.CACChanges)
	require.Len(t, res.Results, len(unitecon.DefaultChurnChanges))
	assert.Len(t, res.Results[0], len(unitecon.DefaultCACChanges))

	body = `{
		"ltv": {"arpu": 100, "gross_margin": 80, "avg_customer_lifespan": 24},
		"cac": {"total_sales_marketing_spend": 64000, "new_customers_acquired": 100},
		"cac_changes": [0, 50],
		"churn_changes": [0]
	}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/unit-economics/sensitivity", body), &res)
	require.Len(t, res.Results, 1)
	assert.Len(t, res.Results[0], 2)
}

func TestRetention(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res struct {
		NRR       float64              `json:"nrr"`
		Status    string               `json:"status"`
		Benchmark *unitecon.Comparison `json:"benchmark"`
	}
	body := `{"start_mrr": 10000, "end_mrr": 11000, "industry": "SaaS"}`
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/retention", body), &res)
	assert.InDelta(t, 110, res.NRR, 1e-9)
	assert.Equal(t, "good", res.Status)
	require.NotNil(t, res.Benchmark)
	assert.Equal(t, "nrr", res.Benchmark.Metric)
}

const workbookBody = `{
	"company": {"company_name": "Acme Analytics", "industry": "SaaS", "cash_in_bank": 100000, "monthly_revenue": 10000},
	"runway": {"monthly_expenses": {"salaries": 25000, "rent": 5000}},
	"equity": {"co_founders": [{"name": "Ada", "time_commitment": 100, "role_importance": 10, "ip_contribution": 10}]},
	"valuation": {"funding_stage": "Seed", "growth_rate": 120}
}`

func TestWorkbook_JSON(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	var res struct {
		Runway    map[string]any `json:"runway"`
		Valuation map[string]any `json:"valuation"`
		Dashboard struct {
			CompanyName string `json:"company_name"`
			Cards       []any  `json:"cards"`
		} `json:"dashboard"`
	}
	decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/workbook", workbookBody), &res)
	assert.NotNil(t, res.Runway)
	assert.NotNil(t, res.Valuation)
	assert.Equal(t, "Acme Analytics", res.Dashboard.CompanyName)
	assert.NotEmpty(t, res.Dashboard.Cards)
}

func TestWorkbook_XLSX(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/v1/workbook?format=xlsx", workbookBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "workbook.xlsx")

	names, err := export.SheetNames(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, names, export.SheetSummary)
	assert.Contains(t, names, export.SheetRunway)
	assert.Contains(t, names, export.SheetValuation)
}

func TestBenchmarks(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/benchmarks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Benchmarks []struct {
			Industry model.Industry `json:"industry"`
		} `json:"benchmarks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all.Benchmarks, len(model.Industries))
	assert.Equal(t, model.Industries[0], all.Benchmarks[0].Industry)

	tests := []struct {
		path   string
		status int
		want   model.Industry
	}{
		{"/v1/benchmarks/saas", http.StatusOK, model.IndustrySaaS},
		{"/v1/benchmarks/e-commerce", http.StatusOK, model.IndustryEcommerce},
		{"/v1/benchmarks/B2B%20Services", http.StatusOK, model.IndustryB2BServices},
		{"/v1/benchmarks/Other", http.StatusOK, model.IndustryOther},
		{"/v1/benchmarks/crypto", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.Contains(t, errorMessage(t, rec), "unknown industry")
				return
			}
			var b struct {
				Industry model.Industry `json:"industry"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
			assert.Equal(t, tt.want, b.Industry)
		})
	}
}

func TestHistory_Disabled(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	for _, path := range []string{"/v1/calculations", "/v1/calculations/abc"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "not configured")
	}
}

func TestHistory_SavesAndLists(t *testing.T) {
	t.Parallel()
	st := newSQLiteStore(t)
	h := newTestHandler(t, WithStore(st, resilience.DefaultBreakerConfig()))

	var res map[string]any
	id := decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/runway?label=acme", runwayBody), &res)
	require.NotEmpty(t, id)
	wbID := decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/workbook", workbookBody), &res)
	require.NotEmpty(t, wbID)

	rec := do(t, h, http.MethodGet, "/v1/calculations/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var c model.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, model.KindRunway, c.Kind)
	assert.Equal(t, "acme", c.Label)
	assert.Contains(t, string(c.Input), `"cash_in_bank":100000`)
	assert.Contains(t, string(c.Output), `"runway_status":"warning"`)

	rec = do(t, h, http.MethodGet, "/v1/calculations?kind=workbook", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Calculations []model.Calculation `json:"calculations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Calculations, 1)
	assert.Equal(t, wbID, list.Calculations[0].ID)
	assert.Equal(t, "Acme Analytics", list.Calculations[0].Label)

	rec = do(t, h, http.MethodGet, "/v1/calculations?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Calculations, 1)

	rec = do(t, h, http.MethodGet, "/v1/calculations?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "limit must be a non-negative integer")

	rec = do(t, h, http.MethodGet, "/v1/calculations/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"ok","history":"closed"}`, rec.Body.String())
}

// failingStore rejects every write.
type failingStore struct {
	store.Store
	saves int
}

func (f *failingStore) SaveCalculation(context.Context, *model.Calculation) error {
	f.saves++
	return errors.New("database is locked")
}

func TestHistory_StoreFailureStillAnswers(t *testing.T) {
	t.Parallel()
	fs := &failingStore{}
	h := newTestHandler(t, WithStore(fs, resilience.BreakerConfig{Failures: 2, Cooldown: time.Hour}))

	for i := 0; i < 4; i++ {
		var res map[string]any
		id := decodeEnvelope(t, do(t, h, http.MethodPost, "/v1/runway", runwayBody), &res)
		assert.Empty(t, id)
		assert.Equal(t, "warning", res["runway_status"])
	}
	assert.Equal(t, 2, fs.saves)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"ok","history":"open"}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.5, Burst: 2}
	h := New(nil, cfg).Routes()

	post := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/runway", bytes.NewBufferString(runwayBody))
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, post("10.0.0.1:1001").Code)
	rec := post("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, "too many requests", errorMessage(t, rec))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, post("10.0.0.2:1000").Code)

	// Health checks bypass the limiter.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1003"
	hrec := httptest.NewRecorder()
	h.ServeHTTP(hrec, req)
	assert.Equal(t, http.StatusOK, hrec.Code)
}

func TestRateLimit_ForwardedFor(t *testing.T) {
	t.Parallel()
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 1, Burst: 1}
	h := New(nil, cfg).Routes()

	post := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/runway", strings.NewReader(runwayBody))
		req.RemoteAddr = "192.168.1.1:5000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, post("203.0.113.7"))
	assert.Equal(t, http.StatusOK, post("203.0.113.8"))
}

func TestClientLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()
	l := newClientLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.Len(t, l.clients, 1)

	now = now.Add(clientIdleTTL + time.Minute)
	assert.True(t, l.allow("b"))
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "b")
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/runway", nil)
	req.Header.Set("Origin", "https://app.incubazar.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
