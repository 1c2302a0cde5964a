package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"netdash/internal/alerts"
	"netdash/internal/auth"
	"netdash/internal/history"
	"netdash/internal/metrics"
	"netdash/internal/models"
	"netdash/internal/topology"
)

//go:embed static/*
var embeddedStatic embed.FS

// TrafficSource streams freshly generated traffic samples.
type TrafficSource interface {
	Subscribe() (<-chan models.TrafficSample, func())
}

// Deps are the components the HTTP layer serves.
type Deps struct {
	Topology  *topology.State
	Traffic   *history.Window
	Live      TrafficSource
	Alerts    *alerts.Feed
	Directory *auth.Directory
	Sessions  *auth.Sessions
	Metrics   *metrics.Registry
	Logger    *zap.Logger
}

// Server wraps HTTP serving of API + static assets.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	staticFS   fs.FS

	topology  *topology.State
	traffic   *history.Window
	live      TrafficSource
	alerts    *alerts.Feed
	directory *auth.Directory
	sessions  *auth.Sessions
	metrics   *metrics.Registry
	logger    *zap.Logger

	hub *hub
}

// New creates a configured HTTP server for the dashboard.
func New(addr string, deps Deps) *Server {
	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic("static assets missing: " + err.Error())
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := deps.Metrics
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	s := &Server{
		router:    mux.NewRouter(),
		staticFS:  staticFS,
		topology:  deps.Topology,
		traffic:   deps.Traffic,
		live:      deps.Live,
		alerts:    deps.Alerts,
		directory: deps.Directory,
		sessions:  deps.Sessions,
		metrics:   reg,
		logger:    logger,
		hub:       newHub(),
	}
	s.registerRoutes(s.router)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.metrics.RecordTopology(s.topology.Summary())
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(r *mux.Router) {
	r.Use(s.instrument)

	fileServer := http.FileServer(http.FS(s.staticFS))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(s.staticFS, "index.html")
		if err != nil {
			http.Error(w, "index missing", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fileServer)).Methods(http.MethodGet)
	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		icon, err := fs.ReadFile(s.staticFS, "favicon.ico")
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "image/x-icon")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(icon)
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	session := api.NewRoute().Subrouter()
	session.Use(s.requireSession)
	session.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	session.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	session.HandleFunc("/overview", s.handleOverview).Methods(http.MethodGet)
	session.HandleFunc("/traffic", s.handleTraffic).Methods(http.MethodGet)
	session.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	session.HandleFunc("/ws", s.handleLiveWS).Methods(http.MethodGet)

	view := session.NewRoute().Subrouter()
	view.Use(s.requirePermission(func(p auth.Permissions) bool { return p.ViewTopology }))
	view.HandleFunc("/topology", s.handleTopology).Methods(http.MethodGet)
	view.HandleFunc("/devices", s.handleDevices).Methods(http.MethodGet)
	view.HandleFunc("/topology/devices/{id}/toggle", s.handleToggle).Methods(http.MethodPost)

	configure := session.NewRoute().Subrouter()
	configure.Use(s.requirePermission(func(p auth.Permissions) bool { return p.ConfigureTopology }))
	configure.HandleFunc("/topology/export", s.handleExport).Methods(http.MethodGet)

	admin := session.NewRoute().Subrouter()
	admin.Use(s.requirePermission(func(p auth.Permissions) bool { return p.ManageUsers }))
	admin.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", s.handleAddUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/toggle", s.handleToggleUser).Methods(http.MethodPost)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func parseLimit(r *http.Request, fallback int) int {
	if fallback <= 0 {
		return fallback
	}
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
