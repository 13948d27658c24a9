package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/board-api/internal/board"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/internal/ratelimit"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Board   board.Client
	Limiter ratelimit.Limiter
	Metrics *metrics.Metrics
	Logger  logger.Logger
	Config  *config.Config
}

type Server struct {
	board   board.Client
	limiter ratelimit.Limiter
	metrics *metrics.Metrics
	logger  logger.Logger
	addr    string
	srv     *http.Server
}

func New(opts Opts) *Server {
	s := &Server{
		board:   opts.Board,
		limiter: opts.Limiter,
		metrics: opts.Metrics,
		logger:  opts.Logger.WithComponent("HTTP"),
		addr:    fmt.Sprintf(":%d", opts.Config.App.Port),
	}

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           otelhttp.NewHandler(s.Routes(), "board.http"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	return s
}

// Routes returns the mux without tracing; tests drive it directly.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.Handle("GET /posts", s.wrap(s.listPosts))
	mux.Handle("GET /posts/{post_id}", s.wrap(s.getPost))

	mux.Handle("POST /posts", s.limit(s.wrap(s.createPost)))
	mux.Handle("POST /posts/{post_id}/comments", s.limit(s.wrap(s.addComment)))
	mux.Handle("POST /posts/{post_id}/likes", s.limit(s.wrap(s.likePost)))

	return mux
}

func (s *Server) wrap(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			if statusOf(err) == http.StatusInternalServerError {
				s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
			}
			writeError(w, err)
		}
	})
}

// limit throttles writes per acting user, falling back to the client address.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(userHeader)
		if key == "" {
			key = clientIP(r)
		}

		if !s.limiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path)
			writeJSON(w, errorBody{
				Error:  "rate_limited",
				Reason: "too many requests",
				Status: http.StatusTooManyRequests,
			}, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) Start(context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.logger.Info("Starting server", "addr", s.addr)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server")
	return s.srv.Shutdown(ctx)
}
