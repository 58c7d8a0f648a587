package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fleshka4/vault-quoter/internal/config"
	"github.com/fleshka4/vault-quoter/internal/service"
)

// Server represents the HTTP transport layer.
type Server struct {
	svc    service.Service
	logger *zap.Logger
	mux    *http.ServeMux

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// NewServer creates a new HTTP server with registered routes. Metrics of
// gatherer are exposed on /metrics.
func NewServer(svc service.Service, logger *zap.Logger, gatherer prometheus.Gatherer, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if svc == nil || logger == nil || gatherer == nil {
		return nil, errors.New("server dependencies must not be nil")
	}

	s := &Server{
		svc:    svc,
		logger: logger,
		mux:    http.NewServeMux(),

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}

	s.mux.HandleFunc("/swap/quote", s.handleSwapQuote)
	s.mux.HandleFunc("/swap/build", s.handleSwapBuild)
	s.mux.HandleFunc("/nested/exit/quote", s.handleNestedExitQuote)
	s.mux.HandleFunc("/nested/join/quote", s.handleNestedJoinQuote)
	s.mux.HandleFunc("/nested/build", s.handleNestedBuild)
	s.mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.logger.Warn("ping write error", zap.Error(err))
		}
	})

	return s, nil
}

// ListenAndServe starts the HTTP server and enables graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.logMiddleware(s.mux),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until a signal is received or the listener fails.
	select {
	case <-stop:
	case err := <-errCh:
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "srv.Shutdown")
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
