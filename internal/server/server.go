// Package server provides the HTTP API of a résumé editing session.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/enhance"
	"github.com/jonathan/resume-craft/internal/export"
	"github.com/jonathan/resume-craft/internal/server/middleware"
	"github.com/jonathan/resume-craft/internal/server/ratelimit"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Enhancer is the text enhancement port used by the synchronous endpoints
type Enhancer interface {
	Enhance(ctx context.Context, text, label string) string
	GenerateSummary(ctx context.Context, role, highlights string) string
}

// Config holds server configuration
type Config struct {
	Port int
	// PresentLabel is the default display token for ongoing entries
	PresentLabel string
}

// Deps are the collaborators of a Server. Session and Enhancer are required.
type Deps struct {
	Session  *document.Session
	Enhancer Enhancer
	// Dispatcher defaults to one built from Session and Enhancer
	Dispatcher *enhance.Dispatcher
	// Printer is optional; without it PDF export answers 503
	Printer   export.Printer
	RateLimit *ratelimit.Config
	Log       logrus.FieldLogger
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	session      *document.Session
	enhancer     Enhancer
	dispatcher   *enhance.Dispatcher
	printer      export.Printer
	rateLimiter  *ratelimit.Limiter
	log          logrus.FieldLogger
	validate     *validator.Validate
	presentLabel string
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Session == nil {
		return nil, fmt.Errorf("server requires a session")
	}
	if deps.Enhancer == nil {
		return nil, fmt.Errorf("server requires an enhancer")
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = enhance.NewDispatcher(deps.Session, deps.Enhancer, log)
	}

	s := &Server{
		session:      deps.Session,
		enhancer:     deps.Enhancer,
		dispatcher:   dispatcher,
		printer:      deps.Printer,
		rateLimiter:  ratelimit.NewLimiter(deps.RateLimit),
		log:          log.WithField("component", "server"),
		validate:     validator.New(),
		presentLabel: cfg.PresentLabel,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document
	mux.HandleFunc("GET /document", s.handleGetDocument)
	mux.HandleFunc("POST /commands", s.handleCommand)
	mux.HandleFunc("GET /events", s.handleEvents)

	// Projection and export
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /preview.json", s.handlePreviewJSON)
	mux.HandleFunc("GET /export.tex", s.handleExportLaTeX)
	mux.HandleFunc("GET /export.pdf", s.handleExportPDF)

	// Text enhancement
	mux.HandleFunc("POST /polish", s.handlePolish)
	mux.HandleFunc("POST /enhance", s.handleEnhance)
	mux.HandleFunc("POST /sections/{id}/polish", s.handlePolishSection)
	mux.HandleFunc("POST /summary/generate", s.handleGenerateSummary)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.withRateLimit(middleware.RequestID(middleware.Logger(s.log)(middleware.CORS(mux)))),
		ReadTimeout: 30 * time.Second,
		// no WriteTimeout: /events streams for the lifetime of the client
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with every middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully and waits for
// in-flight enhancements to be applied.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("Server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.dispatcher.Wait()

	s.log.Info("Server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.log.WithFields(logrus.Fields{
		"path":      r.URL.Path,
		"client":    s.extractClientID(r),
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}).Warn("Rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.session.Snapshot().Version,
		"pdf":     s.printer != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr writes err with the status HTTPStatus picks for it
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("Request failed")
	}
	s.errorResponse(w, status, err.Error())
}

// decodeBody reads a JSON body into dst and validates it
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{Field: verrs[0].Field(), Message: "failed on " + verrs[0].Tag()}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

