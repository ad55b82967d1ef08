package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/logging"
	"github.com/san-kum/mechsolver/internal/materials"
)

// maxBody caps calculation request bodies.
const maxBody = 1 << 20

type Options struct {
	RateLimit float64 // requests per second per client IP
	RateBurst int
	Log       *slog.Logger
}

type Server struct {
	reg     *catalog.Registry
	log     *slog.Logger
	prom    *prometheus.Registry
	metrics *metrics
	limiter *IPRateLimiter
}

func New(reg *catalog.Registry, opts Options) *Server {
	if opts.Log == nil {
		opts.Log = logging.NewNop()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 20
	}

	prom := prometheus.NewRegistry()
	s := &Server{
		reg:     reg,
		log:     opts.Log,
		prom:    prom,
		metrics: newMetrics(prom),
		limiter: NewIPRateLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
	}
	s.limiter.onReject = s.metrics.rateLimited.Inc
	return s
}

// Handler builds the router. /metrics and /health bypass the rate limiter.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limiter.LimitMiddleware)
		r.Get("/formulas", s.listFormulas)
		r.Get("/formulas/{module}/{name}", s.getFormula)
		r.Post("/calc/{module}/{name}", s.calculate)
		r.Get("/materials", s.listMaterials)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		s.log.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type paramView struct {
	catalog.Param
	Kind string `json:"kind"`
}

type formulaView struct {
	ID     string      `json:"id"`
	Module string      `json:"module"`
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Params []paramView `json:"params,omitempty"`
	PlotX  string      `json:"plot_x,omitempty"`
	PlotY  string      `json:"plot_y,omitempty"`
}

func viewOf(f *catalog.Formula, withParams bool) formulaView {
	v := formulaView{ID: f.ID(), Module: f.Module, Name: f.Name, Title: f.Title, PlotX: f.PlotX, PlotY: f.PlotY}
	if withParams {
		for _, p := range f.Params {
			v.Params = append(v.Params, paramView{Param: p, Kind: p.Kind.String()})
		}
	}
	return v
}

// listFormulas handles GET /api/v1/formulas, optionally filtered by ?module=.
func (s *Server) listFormulas(w http.ResponseWriter, r *http.Request) {
	fs := s.reg.All()
	if m := r.URL.Query().Get("module"); m != "" {
		fs = s.reg.Formulas(m)
	}
	out := make([]formulaView, 0, len(fs))
	for _, f := range fs {
		out = append(out, viewOf(f, false))
	}
	_ = writeJSON(w, http.StatusOK, out)
}

func (s *Server) getFormula(w http.ResponseWriter, r *http.Request) {
	f, err := s.reg.Get(chi.URLParam(r, "module") + "/" + chi.URLParam(r, "name"))
	if err != nil {
		status, kind := classify(err)
		writeError(w, status, kind, err.Error())
		return
	}
	_ = writeJSON(w, http.StatusOK, viewOf(f, true))
}

type calcResponse struct {
	Formula string       `json:"formula"`
	Inputs  catalog.Args `json:"inputs"`
	Result  any          `json:"result"`
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "module") + "/" + chi.URLParam(r, "name")
	f, err := s.reg.Get(id)
	if err != nil {
		status, kind := classify(err)
		writeError(w, status, kind, err.Error())
		return
	}

	args := catalog.Args{}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", "request body must be a JSON object of parameters")
		s.log.Warn("calculate: invalid body", "formula", id, "error", err)
		return
	}

	start := time.Now()
	res, err := f.Eval(args)
	s.metrics.duration.WithLabelValues(id).Observe(time.Since(start).Seconds())

	if err != nil {
		status, kind := classify(err)
		s.metrics.calculations.WithLabelValues(id, kind).Inc()
		if status >= http.StatusInternalServerError {
			s.log.Error("calculate failed", "formula", id, "error", err)
		}
		writeError(w, status, kind, err.Error())
		return
	}
	s.metrics.calculations.WithLabelValues(id, "ok").Inc()
	_ = writeJSON(w, http.StatusOK, calcResponse{Formula: id, Inputs: args, Result: res})
}

func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, materials.All())
}
