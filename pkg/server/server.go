// Package server exposes the dependency report parser and the Maven lookup
// over HTTP.
//
// Routes:
//
//	POST /v1/coordinates?mode=tree|flat   report text → {"coordinates": [...]}
//	POST /v1/reports?mode=&format=        report text → csv, json or table
//	GET  /v1/artifacts/{coordinate}       artifact metadata as JSON
//	GET  /healthz                         liveness probe
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/gradle"
	"github.com/matzehuels/ossinfo/pkg/integrations"
	"github.com/matzehuels/ossinfo/pkg/inventory"
	"github.com/matzehuels/ossinfo/pkg/observability"
	"github.com/matzehuels/ossinfo/pkg/report"
)

const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMaxBodyBytes   = 8 << 20
	DefaultRequestTimeout = 2 * time.Minute
)

// Options configures a Server.
type Options struct {
	MaxBodyBytes   int64                // Request body limit (default: 8 MiB)
	RequestTimeout time.Duration        // Per-request deadline (default: 2m)
	Concurrency    int                  // Lookups in flight per report request
	Logger         func(string, ...any) // Request log callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Server serves the HTTP API.
type Server struct {
	fetcher inventory.Fetcher
	opts    Options
	router  chi.Router
}

// New creates a Server that looks artifacts up with f.
func New(f inventory.Fetcher, opts Options) *Server {
	s := &Server{fetcher: f, opts: opts.WithDefaults()}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/coordinates", s.handleCoordinates)
		r.Post("/reports", s.handleReport)
		r.Get("/artifacts/{coordinate}", s.handleArtifact)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond), middleware.GetReqID(r.Context()))
	})
}

// parseBody runs the extractor selected by the mode query parameter over
// the request body.
func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) ([]string, error) {
	mode, err := gradle.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	coords, err := gradle.Parse(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes), mode)
	observability.Inventory().OnParseComplete(r.Context(), string(mode), len(coords), time.Since(start), err)
	return coords, err
}

func (s *Server) handleCoordinates(w http.ResponseWriter, r *http.Request) {
	coords, err := s.parseBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"coordinates": coords})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	coords, err := s.parseBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, err := inventory.Collect(r.Context(), coords, s.fetcher, inventory.Options{
		Concurrency: s.opts.Concurrency,
		Refresh:     refresh(r),
		Logger:      s.opts.Logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Report-Id", rep.ID.String())
	w.Header().Set("X-Failed-Lookups", strconv.Itoa(rep.Failed()))
	if err := report.Write(w, rep, format, report.Options{}); err != nil {
		s.opts.Logger("write report %s: %v", rep.ID, err)
	}
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	coord := chi.URLParam(r, "coordinate")
	a, err := s.fetcher.Fetch(r.Context(), coord, refresh(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func refresh(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return v
}

func contentType(f report.Format) string {
	switch f {
	case report.FormatJSON:
		return "application/json"
	case report.FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

type errorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
	Line  int         `json:"line,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Code: errors.GetCode(err), Error: err.Error(), Line: errors.LineOf(err)}
	writeJSON(w, statusOf(err), body)
}

// statusOf maps an error to an HTTP status code.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, integrations.ErrNotFound), errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeRateLimited):
		return http.StatusTooManyRequests
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidIndent, errors.ErrCodeMissingConfiguration, errors.ErrCodeMalformedCoordinate:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeIO:
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
