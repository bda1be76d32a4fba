// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"resume-studio/internal/importer"
	"resume-studio/internal/improve"
	"resume-studio/internal/render"
	"resume-studio/internal/server/ratelimit"
	"resume-studio/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *store.Store
	renderer    *render.Renderer
	improver    *improve.Improver
	importer    *importer.Importer
	rateLimiter *ratelimit.Limiter
	apiKey      string
}

// Config holds server configuration
type Config struct {
	Port         int
	APIKey       string
	SnapshotPath string
	// TemplateOverrideDir optionally points at a directory of layout
	// overrides that are hot reloaded while the server runs.
	TemplateOverrideDir string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	renderer, err := render.NewRenderer(cfg.TemplateOverrideDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		store:       store.New(store.Options{SnapshotPath: cfg.SnapshotPath}),
		renderer:    renderer,
		improver:    improve.New(cfg.APIKey),
		importer:    importer.New(cfg.APIKey),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		apiKey:      cfg.APIKey,
	}

	mux := http.NewServeMux()

	// Outbound integrations
	mux.HandleFunc("POST /api/ai/improve", s.handleImprove)
	mux.HandleFunc("POST /api/parse/pdf", s.handleParsePDF)
	mux.HandleFunc("POST /api/export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /api/export/resume.pdf", s.handleExportResume)

	// Resume document
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume", s.handlePutResume)
	mux.HandleFunc("POST /api/resume/reset", s.handleResetResume)
	mux.HandleFunc("GET /api/resume/validate", s.handleValidateResume)
	mux.HandleFunc("GET /api/resume/score", s.handleScoreResume)
	mux.HandleFunc("PUT /api/resume/basics", s.handleUpdateBasics)
	mux.HandleFunc("PUT /api/resume/metadata", s.handleUpdateMetadata)

	// Sections and items
	mux.HandleFunc("POST /api/resume/sections", s.handleAddSection)
	mux.HandleFunc("PUT /api/resume/sections/{id}", s.handleUpdateSection)
	mux.HandleFunc("DELETE /api/resume/sections/{id}", s.handleRemoveSection)
	mux.HandleFunc("POST /api/resume/sections/{id}/reorder", s.handleReorderSection)
	mux.HandleFunc("POST /api/resume/sections/{id}/items", s.handleAddItem)
	mux.HandleFunc("PUT /api/resume/sections/{id}/items/{item_id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/resume/sections/{id}/items/{item_id}", s.handleRemoveItem)
	mux.HandleFunc("POST /api/resume/sections/{id}/items/{item_id}/reorder", s.handleReorderItem)

	// Templates
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("PUT /api/template", s.handleSetTemplate)
	mux.HandleFunc("GET /api/preview", s.handlePreview)
	mux.HandleFunc("PUT /api/preview-mode", s.handleSetPreviewMode)

	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM calls and PDF renders are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := s.renderer.Watch(gctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-stop:
			log.Println("Shutting down server...")
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		cancel()
		return nil
	})

	err := g.Wait()

	s.rateLimiter.Stop()
	s.store.Close()
	log.Println("Server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorResponseDetails writes an error JSON response with diagnostics.
func (s *Server) errorResponseDetails(w http.ResponseWriter, status int, message, details string) {
	s.jsonResponse(w, status, map[string]string{"error": message, "details": details})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For is deliberately not
// trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
