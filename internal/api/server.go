// Package api exposes the scoring pipeline and breach lookups over a small
// JSON REST surface. The server owns transport concerns only: routing,
// middleware, rate limiting, and error shaping; all scanning logic lives
// behind the service interfaces.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/secscope/secscope/internal/api/middleware"
	"github.com/secscope/secscope/internal/breach"
	"github.com/secscope/secscope/internal/scoring"
	"github.com/secscope/secscope/internal/shared/constants"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ScanService runs the heuristic scorers.
type ScanService interface {
	ScoreURL(ctx context.Context, rawURL string) scoring.URLReport
	ScoreEmail(ctx context.Context, from, subject, body string) scoring.EmailReport
	ScanHeaders(ctx context.Context, rawURL string) (scoring.HeaderReport, error)
}

// BreachService proxies the third-party breach lookups.
type BreachService interface {
	CheckPassword(ctx context.Context, password string) (breach.PasswordResult, error)
	CheckEmail(ctx context.Context, email string) (breach.EmailResult, error)
}

// AssistService produces remediation advice for a finding.
type AssistService interface {
	Explain(ctx context.Context, message, description string) (string, error)
}

type Config struct {
	Scans     ScanService
	Breaches  BreachService
	Assistant AssistService
	AuthToken string
	Logger    *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = allow all)
	RateLimit   int      // Requests per second per IP (0 = disabled)
	RateBurst   int      // Burst size for rate limiter
}

type Server struct {
	cfg      Config
	mux      *http.ServeMux
	limiters *rateLimiterMap
}

func NewServer(cfg Config) *Server {
	srv := &Server{
		cfg:      cfg,
		mux:      http.NewServeMux(),
		limiters: newRateLimiterMap(),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Middleware chain: RequestID -> Logging -> RateLimit -> CORS -> Handler
	handler := middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(s.mux))))
	handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Version 1 API routes (primary)
	s.mux.Handle("/api/v1/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
	s.mux.Handle("/api/v1/ready", s.withAuth(http.HandlerFunc(s.handleReady)))
	s.mux.Handle("/api/v1/check-url", s.withAuth(http.HandlerFunc(s.handleCheckURL)))
	s.mux.Handle("/api/v1/check-phishing-email", s.withAuth(http.HandlerFunc(s.handleCheckEmail)))
	s.mux.Handle("/api/v1/scan-owasp", s.withAuth(http.HandlerFunc(s.handleScanHeaders)))
	s.mux.Handle("/api/v1/check-password", s.withAuth(http.HandlerFunc(s.handleCheckPassword)))
	s.mux.Handle("/api/v1/check-email", s.withAuth(http.HandlerFunc(s.handleBreachEmail)))
	s.mux.Handle("/api/v1/ask-ai", s.withAuth(http.HandlerFunc(s.handleAskAssistant)))

	// Unversioned routes (backward compatibility - alias to v1)
	s.mux.Handle("/api/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
	s.mux.Handle("/api/ready", s.withAuth(http.HandlerFunc(s.handleReady)))
	s.mux.Handle("/api/check-url", s.withAuth(http.HandlerFunc(s.handleCheckURL)))
	s.mux.Handle("/api/check-phishing-email", s.withAuth(http.HandlerFunc(s.handleCheckEmail)))
	s.mux.Handle("/api/scan-owasp", s.withAuth(http.HandlerFunc(s.handleScanHeaders)))
	s.mux.Handle("/api/check-password", s.withAuth(http.HandlerFunc(s.handleCheckPassword)))
	s.mux.Handle("/api/check-email", s.withAuth(http.HandlerFunc(s.handleBreachEmail)))
	s.mux.Handle("/api/ask-ai", s.withAuth(http.HandlerFunc(s.handleAskAssistant)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	if s.cfg.Scans == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, errors.New("scan service not available"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type urlRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleCheckURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no URL provided"))
		return
	}
	report := s.cfg.Scans.ScoreURL(r.Context(), req.URL)
	writeJSON(w, http.StatusOK, report)
}

type emailScanRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailScanRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	report := s.cfg.Scans.ScoreEmail(r.Context(), req.From, req.Subject, req.Body)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleScanHeaders(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("no URL provided"))
		return
	}
	report, err := s.cfg.Scans.ScanHeaders(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, secerrors.ErrTargetUnreachable) {
			s.writeError(w, r, http.StatusBadGateway, err)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleCheckPassword(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Breaches == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("breach service not available"))
		return
	}
	var req passwordRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, secerrors.ErrEmptyPassword)
		return
	}
	result, err := s.cfg.Breaches.CheckPassword(r.Context(), req.Password)
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type emailLookupRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleBreachEmail(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Breaches == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("breach service not available"))
		return
	}
	var req emailLookupRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.Email == "" {
		s.writeError(w, r, http.StatusBadRequest, secerrors.ErrEmptyEmail)
		return
	}

	// Demo address always reports canned breaches so the UI flow can be
	// exercised without an upstream key.
	if strings.EqualFold(req.Email, "demo-breach@example.com") {
		writeJSON(w, http.StatusOK, breach.EmailResult{
			Breached: true,
			Breaches: []string{
				"Demo Leak: ExampleCorp 2023",
				"Demo Leak: SampleDB 2024",
				"Demo Leak: TestLeak 2022",
			},
		})
		return
	}

	result, err := s.cfg.Breaches.CheckEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, secerrors.ErrBreachAPIKeyUnset) {
			s.writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type assistRequest struct {
	Finding struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"finding"`
}

func (s *Server) handleAskAssistant(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Assistant == nil {
		s.writeError(w, r, http.StatusNotFound, errors.New("assistant not available"))
		return
	}
	var req assistRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.Finding.Message == "" {
		s.writeError(w, r, http.StatusBadRequest, secerrors.ErrEmptyFinding)
		return
	}
	answer, err := s.cfg.Assistant.Explain(r.Context(), req.Finding.Message, req.Finding.Description)
	if err != nil {
		if errors.Is(err, secerrors.ErrAssistantKeyUnset) {
			s.writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// decodePost enforces POST + bounded JSON body decoding for every scan
// endpoint. Returns false when it has already written an error response.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip rate limiting if disabled
		if s.cfg.RateLimit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		// Extract client IP (handle X-Forwarded-For for proxied requests)
		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			// Use first IP in X-Forwarded-For chain
			if idx := strings.Index(forwarded, ","); idx > 0 {
				clientIP = strings.TrimSpace(forwarded[:idx])
			} else {
				clientIP = strings.TrimSpace(forwarded)
			}
		}
		// Remove port if present
		if idx := strings.LastIndex(clientIP, ":"); idx > 0 {
			clientIP = clientIP[:idx]
		}

		limiter := s.limiters.getLimiter(clientIP, s.cfg.RateLimit, s.cfg.RateBurst)
		if !limiter.Allow() {
			if s.cfg.Logger != nil {
				s.requestLogger(r).Warn("rate_limit_exceeded",
					zap.String("client_ip", clientIP),
				)
			}
			s.writeError(w, r, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Determine if origin is allowed
		allowOrigin := "*"
		if len(s.cfg.CORSOrigins) > 0 {
			allowed := false
			for _, allowedOrigin := range s.cfg.CORSOrigins {
				if allowedOrigin == origin {
					allowed = true
					allowOrigin = origin
					break
				}
			}
			if !allowed {
				allowOrigin = ""
			}
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Auth-Token")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		if s.cfg.Logger != nil {
			requestID := middleware.GetRequestID(r.Context())
			s.cfg.Logger.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", lrw.statusCode),
				zap.Duration("duration", duration),
				zap.Int64("bytes", lrw.bytesWritten),
			)
		}
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.cfg.AuthToken == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		// Use constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) != 1 {
			s.writeError(w, r, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code and
// bytes written
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += int64(n)
	return n, err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	// Sanitize error messages to prevent information disclosure
	msg := err.Error()

	// For 5xx errors other than upstream failures, return a generic message
	// and log details server-side
	if status >= 500 && status != http.StatusBadGateway && status != http.StatusServiceUnavailable {
		if s.cfg.Logger != nil {
			s.requestLogger(r).Error("internal_server_error",
				zap.Error(err),
				zap.Int("status", status),
			)
		}
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger creates a logger with request context (request ID, method, path)
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if s.cfg.Logger == nil {
		return zap.NewNop()
	}

	requestID := middleware.GetRequestID(r.Context())
	return s.cfg.Logger.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

// rateLimiterMap manages per-IP rate limiters with automatic cleanup
type rateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterMap() *rateLimiterMap {
	m := &rateLimiterMap{
		limiters: make(map[string]*ipLimiter),
	}
	// Cleanup goroutine removes stale limiters
	go m.cleanupLoop()
	return m
}

func (m *rateLimiterMap) getLimiter(ip string, rps, burst int) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.limiters[ip]
	if !exists {
		limiter = &ipLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		}
		m.limiters[ip] = limiter
	} else {
		limiter.lastSeen = time.Now()
	}

	return limiter.limiter
}

// cleanupLoop removes limiters that haven't been used in 5 minutes
func (m *rateLimiterMap) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for ip, limiter := range m.limiters {
			if time.Since(limiter.lastSeen) > 5*time.Minute {
				delete(m.limiters, ip)
			}
		}
		m.mu.Unlock()
	}
}
