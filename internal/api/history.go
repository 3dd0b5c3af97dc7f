package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/store"
)

// record saves a calculation and returns its ID. Failures are logged and
// yield an empty ID; the caller still returns the result.
func (s *Server) record(ctx context.Context, kind model.CalculationKind, label string, input, output any) string {
	if s.store == nil {
		return ""
	}
	in, err := json.Marshal(input)
	if err != nil {
		zap.L().Warn("api: marshal calculation input", zap.String("kind", string(kind)), zap.Error(err))
		return ""
	}
	out, err := json.Marshal(output)
	if err != nil {
		zap.L().Warn("api: marshal calculation output", zap.String("kind", string(kind)), zap.Error(err))
		return ""
	}

	c := &model.Calculation{Kind: kind, Label: label, Input: in, Output: out}
	err = s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.store.SaveCalculation(ctx, c)
	})
	if err != nil {
		zap.L().Warn("api: save calculation",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return ""
	}
	return c.ID
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, kind model.CalculationKind, input, result any) {
	label := r.URL.Query().Get("label")
	id := s.record(r.Context(), kind, label, input, result)
	writeJSON(w, http.StatusOK, envelope{CalculationID: id, Result: result})
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "calculation history is not configured")
		return
	}

	q := r.URL.Query()
	filter := store.CalculationFilter{
		Kind:  model.CalculationKind(q.Get("kind")),
		Label: q.Get("label"),
	}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	calcs, err := s.store.ListCalculations(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list calculations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list calculations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": calcs})
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "calculation history is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	c, err := s.store.GetCalculation(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "calculation not found")
		return
	}
	if err != nil {
		zap.L().Error("api: get calculation", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load calculation")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
