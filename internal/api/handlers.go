package api

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/equity"
	"github.com/incubazar/venture-calc/internal/export"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/runway"
	"github.com/incubazar/venture-calc/internal/unitecon"
	"github.com/incubazar/venture-calc/internal/valuation"
	"github.com/incubazar/venture-calc/internal/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type whatIfRequest struct {
	Inputs   runway.Inputs   `json:"inputs"`
	Scenario runway.Scenario `json:"scenario"`
}

type splitRequest struct {
	CoFounders []equity.CoFounder `json:"co_founders"`
}

type valuationResponse struct {
	valuation.Result
	NarrativeHTML string `json:"narrative_html,omitempty"`
}

type unitEconomicsRequest struct {
	LTV      unitecon.LTVInputs `json:"ltv"`
	CAC      unitecon.CACInputs `json:"cac"`
	Industry model.Industry     `json:"industry,omitempty"`
}

type unitEconomicsResponse struct {
	unitecon.LTVCACResult
	Benchmark *unitecon.Comparison `json:"benchmark,omitempty"`
}

type sensitivityRequest struct {
	LTV          unitecon.LTVInputs `json:"ltv"`
	CAC          unitecon.CACInputs `json:"cac"`
	CACChanges   []float64          `json:"cac_changes,omitempty"`
	ChurnChanges []float64          `json:"churn_changes,omitempty"`
}

type retentionRequest struct {
	unitecon.RetentionInputs
	Industry model.Industry `json:"industry,omitempty"`
}

type retentionResponse struct {
	unitecon.RetentionResult
	Benchmark *unitecon.Comparison `json:"benchmark,omitempty"`
}

func (s *Server) handleRunway(w http.ResponseWriter, r *http.Request) {
	var in runway.Inputs
	if !decode(w, r, &in) {
		return
	}
	s.respond(w, r, model.KindRunway, in, s.engine.Runway().Calculate(in))
}

func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Scenario.Type.Valid() {
		writeError(w, http.StatusBadRequest, "unknown scenario type "+strconv.Quote(string(req.Scenario.Type)))
		return
	}
	s.respond(w, r, model.KindWhatIf, req, s.engine.Runway().WhatIf(req.Inputs, req.Scenario))
}

func (s *Server) handleEquitySplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if !decode(w, r, &req) {
		return
	}
	s.respond(w, r, model.KindEquitySplit, req, s.engine.Equity().Split(req.CoFounders))
}

func (s *Server) handleDilution(w http.ResponseWriter, r *http.Request) {
	var in equity.DilutionInputs
	if !decode(w, r, &in) {
		return
	}
	s.respond(w, r, model.KindDilution, in, s.engine.Equity().Dilution(in))
}

func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	var in valuation.Inputs
	if !decode(w, r, &in) {
		return
	}
	res := valuationResponse{Result: s.engine.Valuation().Calculate(in)}
	html, err := valuation.RenderNarrativeHTML(res.Narrative)
	if err != nil {
		zap.L().Warn("api: render valuation narrative", zap.Error(err))
	}
	res.NarrativeHTML = html
	s.respond(w, r, model.KindValuation, in, res)
}

func (s *Server) handleUnitEconomics(w http.ResponseWriter, r *http.Request) {
	var req unitEconomicsRequest
	if !decode(w, r, &req) {
		return
	}
	res := unitEconomicsResponse{LTVCACResult: unitecon.LTVCAC(req.LTV, req.CAC)}
	if req.Industry != "" && res.CAC > 0 {
		cmp := unitecon.CompareTo(s.benchmarksFor(req.Industry), res.Ratio)
		res.Benchmark = &cmp
	}
	s.respond(w, r, model.KindUnitEconomics, req, res)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if !decode(w, r, &req) {
		return
	}
	s.respond(w, r, model.KindSensitivity, req,
		unitecon.Sensitivity(req.LTV, req.CAC, req.CACChanges, req.ChurnChanges))
}

func (s *Server) handleRetention(w http.ResponseWriter, r *http.Request) {
	var req retentionRequest
	if !decode(w, r, &req) {
		return
	}
	res := retentionResponse{RetentionResult: unitecon.Retention(req.RetentionInputs)}
	if req.Industry != "" {
		cmp := unitecon.CompareNRRTo(s.benchmarksFor(req.Industry), res.NRR)
		res.Benchmark = &cmp
	}
	s.respond(w, r, model.KindRetention, req, res)
}

// handleWorkbook computes a full state. With ?format=xlsx the result is
// returned as a spreadsheet instead of JSON.
func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	var st workbook.State
	if !decode(w, r, &st) {
		return
	}
	res := s.engine.Compute(st)

	label := r.URL.Query().Get("label")
	if label == "" {
		label = st.Company.CompanyName
	}
	id := s.record(r.Context(), model.KindWorkbook, label, st, res)

	if r.URL.Query().Get("format") != "xlsx" {
		writeJSON(w, http.StatusOK, envelope{CalculationID: id, Result: res})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, res); err != nil {
		zap.L().Error("api: write workbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="workbook.xlsx"`)
	if id != "" {
		w.Header().Set("X-Calculation-Id", id)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zap.L().Warn("api: write workbook response", zap.Error(err))
	}
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"benchmarks": s.engine.Benchmarks().All()})
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "industry"))
	if err != nil {
		raw = chi.URLParam(r, "industry")
	}
	ind := model.ParseIndustry(raw)
	if ind == model.IndustryOther && !strings.EqualFold(strings.TrimSpace(raw), string(model.IndustryOther)) {
		writeError(w, http.StatusNotFound, "unknown industry "+strconv.Quote(raw))
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Benchmarks().For(ind))
}

func (s *Server) benchmarksFor(ind model.Industry) benchmark.Benchmarks {
	if !ind.Valid() {
		ind = model.ParseIndustry(string(ind))
	}
	return s.engine.Benchmarks().For(ind)
}
