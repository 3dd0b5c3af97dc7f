// Package api serves the calculators over HTTP. Every calculation endpoint
// takes a JSON body and answers with the calculator's result; when a history
// store is attached the request and result are saved as well.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/config"
	"github.com/incubazar/venture-calc/internal/resilience"
	"github.com/incubazar/venture-calc/internal/store"
	"github.com/incubazar/venture-calc/internal/workbook"
)

// Server holds the dependencies shared by the handlers.
type Server struct {
	engine  *workbook.Engine
	cfg     config.ServerConfig
	store   store.Store
	breaker *resilience.Breaker
	limiter *clientLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithStore saves every calculation to st. Writes go through a breaker so a
// failing store does not slow down calculations.
func WithStore(st store.Store, breaker resilience.BreakerConfig) Option {
	return func(s *Server) {
		s.store = st
		s.breaker = resilience.NewBreaker("history", breaker)
	}
}

// New creates a Server around engine.
func New(engine *workbook.Engine, cfg config.ServerConfig, opts ...Option) *Server {
	if engine == nil {
		engine = workbook.NewEngine(workbook.DefaultPolicy())
	}
	s := &Server{engine: engine, cfg: cfg}
	if cfg.RateLimit.RPS > 0 {
		s.limiter = newClientLimiter(cfg.RateLimit)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}

		r.Post("/runway", s.handleRunway)
		r.Post("/runway/whatif", s.handleWhatIf)
		r.Post("/equity/split", s.handleEquitySplit)
		r.Post("/equity/dilution", s.handleDilution)
		r.Post("/valuation", s.handleValuation)
		r.Post("/unit-economics", s.handleUnitEconomics)
		r.Post("/unit-economics/sensitivity", s.handleSensitivity)
		r.Post("/retention", s.handleRetention)
		r.Post("/workbook", s.handleWorkbook)

		r.Get("/benchmarks", s.handleBenchmarks)
		r.Get("/benchmarks/{industry}", s.handleBenchmark)

		r.Get("/calculations", s.handleListCalculations)
		r.Get("/calculations/{id}", s.handleGetCalculation)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "history": "disabled"}
	if s.breaker != nil {
		status["history"] = s.breaker.State().String()
	}
	writeJSON(w, http.StatusOK, status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			zap.L().Info("api: request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
