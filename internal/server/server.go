// Package server exposes analysis results over a small HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/camion/internal/cache"
	"github.com/mfiguera/camion/internal/extract"
	"github.com/mfiguera/camion/pkg/analyzer"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 5 * time.Minute // analysis runs inside the request
	idleTimeout  = 120 * time.Second
)

// PayloadSource produces a raw analysis payload for a target repository.
// *truck.Runner satisfies it.
type PayloadSource interface {
	Analyze(ctx context.Context, target string) (*extract.Payload, error)
}

// Server serves analysis results for repositories on demand.
type Server struct {
	addr     string
	source   PayloadSource
	pipeline *analyzer.Pipeline
	cache    *cache.Cache
	log      *logrus.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables payload caching between requests.
func WithCache(c *cache.Cache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Server listening on addr, sourcing payloads from source.
func New(addr string, source PayloadSource, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		source:   source,
		pipeline: analyzer.New(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/contributions", s.analysisHandler(func(in analyzer.Input) any {
		return s.pipeline.Contributions(in)
	}))
	mux.HandleFunc("/api/simplified", s.analysisHandler(func(in analyzer.Input) any {
		return s.pipeline.Simplified(in)
	}))
	mux.HandleFunc("/api/complexity", s.analysisHandler(func(in analyzer.Input) any {
		return s.pipeline.Complexity(in)
	}))
	mux.HandleFunc("/api/authors", s.analysisHandler(func(in analyzer.Input) any {
		return s.pipeline.AuthorStats(in)
	}))
	return s.logRequests(mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.WithField("addr", s.addr).Info("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]string{"status": "ok"})
}

// analysisHandler wraps the shared payload-fetch flow around one pipeline
// operation.
func (s *Server) analysisHandler(compute func(analyzer.Input) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		repo := r.URL.Query().Get("repo")
		if repo == "" {
			http.Error(w, "missing required query parameter: repo", http.StatusBadRequest)
			return
		}
		ref := r.URL.Query().Get("ref")
		target := repo
		if ref != "" {
			target = repo + "@" + ref
		}

		payload, err := s.payload(r.Context(), target, cache.Key(repo, ref))
		if err != nil {
			s.log.WithError(err).WithField("repo", repo).Error("analysis failed")
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		result := compute(analyzer.Input{
			Tree:    payload.Tree,
			Commits: payload.Commits,
			Authors: payload.Authors,
		})
		s.writeJSON(w, r, result)
	}
}

// payload fetches the raw payload for target, consulting the cache first.
func (s *Server) payload(ctx context.Context, target, key string) (*extract.Payload, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			var p extract.Payload
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
			s.cache.Invalidate(key)
		}
	}

	p, err := s.source.Analyze(ctx, target)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(key, data); err != nil {
				s.log.WithError(err).Warn("cache write failed")
			}
		}
	}
	return p, nil
}

// statusFor maps analysis failures to response codes. Failures of the
// external tool or its output are upstream errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, extract.ErrMarkerNotFound),
		errors.Is(err, extract.ErrMalformedDocument),
		errors.Is(err, extract.ErrInvalidPayload):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v with an ETag, honoring If-None-Match.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf(`"%x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		s.log.WithError(err).Debug("response write failed")
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("request")
	})
}
