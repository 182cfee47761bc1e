package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server/middleware"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"go.uber.org/zap"
)

// Server is the in-memory backend.
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       *Store
	users       *UserService
	jwtService  *JWTService
	authHandler *AuthHandler
	rateLimiter *ratelimit.Limiter
	logger      *zap.SugaredLogger
	now         func() time.Time
}

// Config holds server configuration. Nil members are loaded from the
// environment.
type Config struct {
	Addr      string
	Logger    *zap.SugaredLogger
	JWT       *config.JWTConfig
	Password  *config.PasswordConfig
	RateLimit *ratelimit.Config
	Now       func() time.Time
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.JWT == nil {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		cfg.JWT = jwtConfig
	}
	if cfg.Password == nil {
		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		cfg.Password = passwordConfig
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       NewStore(),
		users:       NewUserService(cfg.Password),
		jwtService:  NewJWTService(cfg.JWT),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit, ratelimit.WithClock(cfg.Now)),
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	s.jwtService.now = cfg.Now
	s.users.now = cfg.Now
	s.authHandler = NewAuthHandler(s.users, s.jwtService, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	protect := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protect(h))
	}

	route("GET /resume/all", s.handleListResumes)
	route("GET /resume/{id}", s.handleGetResume)
	// /resume/{id}/analysis would conflict with /resume/download/{id}.
	route("GET /resume/{id}/{view}", s.handleResumeView)
	route("GET /resume/download/{id}", s.handleDownloadResume)
	route("POST /resume/upload", s.handleUploadResume)
	route("POST /resume/score", s.handleScoreResume)
	route("PATCH /resume/{id}/status", s.handleUpdateStatus)
	route("DELETE /resume/{id}", s.handleDeleteResume)

	route("GET /job/all", s.handleListJobs)
	route("GET /job/{id}", s.handleGetJob)
	route("POST /job/createManual", s.handleCreateJobManual)
	route("POST /job/uploadFile", s.handleUploadJobFile)
	route("DELETE /job/{id}", s.handleDeleteJob)

	s.handler = s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(mux))))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware chain, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Users exposes the account service.
func (s *Server) Users() *UserService {
	return s.users
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infow("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Infow("Server stopped")
	return nil
}

type requestIDKey struct{}

// withRequestID propagates the caller's X-Request-ID, or assigns one.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withCORS lets a browser front end on another origin call the API.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-endpoint budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			}
			s.logger.Warnw("Rate limit exceeded", "client", clientID(r), "path", r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		id, _ := r.Context().Value(requestIDKey{}).(string)
		s.logger.Debugw("Request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", s.now().Sub(start))
	})
}

// clientID is the remote IP of a request.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warnw("Error encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}

// storeError maps a store failure onto a response.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	var notFound *ErrNotFound
	if errors.As(err, &notFound) {
		s.errorResponse(w, status, notFound.Entity+" not found")
		return
	}
	s.logger.Errorw("Store operation failed", "error", err)
	s.errorResponse(w, status, "Internal server error")
}

// pathID parses a positive integer path parameter, writing a 400 when invalid.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", name, raw))
		return 0, false
	}
	return id, true
}
