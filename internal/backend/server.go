package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server exposes a Store over HTTP.
type Server struct {
	store   *Store
	logger  *zap.Logger
	metrics *Metrics
}

// NewServer creates a server for store. A nil logger discards output.
func NewServer(store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger, metrics: NewMetrics()}
	s.metrics.observe(store)
	return s
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler configures all routes and middleware.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(s.metrics.Instrument)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	router.Get("/health", s.health)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/terms", s.listTerms)
		r.Get("/terms/{termID}", s.getTerm)
		r.Get("/graph", s.getGraph)
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving glossary", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTerms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Terms())
}

func (s *Server) getTerm(w http.ResponseWriter, r *http.Request) {
	t, ok := s.store.Term(chi.URLParam(r, "termID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Term not found"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) getGraph(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Graph())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
