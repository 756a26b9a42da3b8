package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"github.com/ziadkadry99/classview/internal/classify"
	"github.com/ziadkadry99/classview/internal/site"
	"github.com/ziadkadry99/classview/internal/viewer"
)

// Config holds server configuration.
type Config struct {
	Port       int
	AllowAll   bool // allow all CORS origins (dev mode)
	LiveReload bool
}

// Server previews a generated document and exposes the forest over HTTP.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
	hub        *Hub

	mu     sync.Mutex
	page   []byte
	export *classify.Export
	viewer *viewer.Viewer
}

// New creates a server. Call Update before serving the first request.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		hub:    NewHub(logger),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/livereload", s.hub.ServeHTTP)

	// The websocket handler hijacks the connection, so the timeout only
	// wraps the plain request routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", s.handlePage)
		r.Get("/"+site.IndexFile, s.handlePage)
		r.Route("/api", func(r chi.Router) {
			r.Get("/forest", s.handleForest)
			r.Get("/search", s.handleSearch)
			r.Get("/nodes/{id}", s.handleNode)
		})
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Update swaps in a freshly generated document and notifies live-reload
// clients.
func (s *Server) Update(page []byte, export *classify.Export) {
	if export == nil {
		export = &classify.Export{}
	}
	s.mu.Lock()
	s.page = page
	s.export = export
	s.viewer = viewer.New(export.Forest, viewer.WithLogger(s.logger))
	s.mu.Unlock()

	s.hub.Broadcast(Message{Type: "reload"})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("preview server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	if page == nil {
		http.Error(w, "document not generated yet", http.StatusServiceUnavailable)
		return
	}
	if s.cfg.LiveReload {
		page = site.InjectLiveReload(page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page)
}

// forestResponse is the JSON response for /api/forest.
type forestResponse struct {
	System classify.SystemInfo `json:"system"`
	Stats  classify.Stats      `json:"stats"`
	Forest []*classify.Node    `json:"forest"`
}

func (s *Server) handleForest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	export := s.export
	s.mu.Unlock()

	if export == nil {
		writeError(w, http.StatusServiceUnavailable, "document not generated yet")
		return
	}
	forest := export.Forest
	if forest == nil {
		forest = []*classify.Node{}
	}
	writeJSON(w, http.StatusOK, forestResponse{System: export.System, Stats: export.Stats(), Forest: forest})
}

// searchResponse is the JSON response for /api/search.
type searchResponse struct {
	Term    string          `json:"term"`
	Matches []viewer.NodeID `json:"matches"`
	Visible []viewer.NodeID `json:"visible"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewer == nil {
		writeError(w, http.StatusServiceUnavailable, "document not generated yet")
		return
	}

	s.viewer.Search(r.URL.Query().Get("q"))
	resp := searchResponse{
		Term:    s.viewer.SearchTerm(),
		Matches: s.viewer.Matches(),
		Visible: []viewer.NodeID{},
	}
	if resp.Matches == nil {
		resp.Matches = []viewer.NodeID{}
	}
	classify.Walk(s.viewer.Forest(), func(n, _ *classify.Node, _ int) bool {
		if !s.viewer.IsVisible(n.ID) {
			return false
		}
		resp.Visible = append(resp.Visible, n.ID)
		return true
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewer == nil {
		writeError(w, http.StatusServiceUnavailable, "document not generated yet")
		return
	}

	id := viewer.NodeID(chi.URLParam(r, "id"))
	if _, ok := s.viewer.Node(id); !ok {
		writeError(w, http.StatusNotFound, "unknown node "+string(id))
		return
	}
	s.viewer.Select(id)
	sel, _ := s.viewer.Selection()
	writeJSON(w, http.StatusOK, sel)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs each request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
