// Package server exposes the renderer over HTTP.
//
// Routes:
//
//	POST /v1/render  JSON request body, image/png response
//	GET  /v1/themes  JSON list of theme names
//
// Request bodies are decoded over [pipeline.DefaultRequest], so absent
// fields keep their defaults. Responses carry X-Codeshot-Cache: hit|miss.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/pipeline"
	"github.com/matzehuels/codeshot/pkg/theme"
)

const (
	// MaxBodyBytes bounds a render request body.
	MaxBodyBytes = 1 << 20

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// CacheHeader reports whether the PNG came from the artifact cache.
	CacheHeader = "X-Codeshot-Cache"
)

// Server serves screenshots.
type Server struct {
	runner  *pipeline.Runner
	catalog *theme.Catalog
	logger  *log.Logger
	timeout time.Duration
}

// New creates a server. The runner must render with themes from catalog.
func New(runner *pipeline.Runner, catalog *theme.Catalog, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:  runner,
		catalog: catalog,
		logger:  logger,
		timeout: DefaultTimeout,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/themes", s.handleThemes)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req := pipeline.DefaultRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "body exceeds %d bytes", MaxBodyBytes))
			return
		}
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("render failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
		}
		writeError(w, status, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

type themesResponse struct {
	Default string   `json:"default"`
	Themes  []string `json:"themes"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themesResponse{
		Default: theme.DefaultName,
		Themes:  s.catalog.Names(),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidTheme, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeSurfaceAllocation:
		return http.StatusUnprocessableEntity
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs one line per request through the charm logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Millisecond),
				"request_id", middleware.GetReqID(r.Context()))
		}()
		next.ServeHTTP(ww, r)
	})
}
