package api

import (
	"io/fs"
	"net/http"

	"github.com/isabel-dlai/process-viewer/internal/handlers"
	"github.com/isabel-dlai/process-viewer/internal/middleware"
	"github.com/isabel-dlai/process-viewer/internal/scanner"
	"github.com/isabel-dlai/process-viewer/internal/service"

	"github.com/gorilla/mux"
)

type Router struct {
	*mux.Router
}

func NewRouter(monitor *service.Monitor, sc *scanner.Scanner, hub *service.Hub, refreshSeconds int, templatesFS, staticFS fs.FS) (*Router, error) {
	r := mux.NewRouter()

	tmplHandler, err := handlers.NewTemplateHandler(templatesFS, refreshSeconds)
	if err != nil {
		return nil, err
	}

	procHandler := handlers.NewProcessHandler(monitor, sc)
	wsHandler := handlers.NewWSHandler(hub, monitor)

	// Health check endpoints (no middleware for faster response)
	r.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/ready", handlers.ReadyCheck(monitor)).Methods(http.MethodGet)

	// Web UI routes using templates
	r.HandleFunc("/", tmplHandler.ServeTemplate("dashboard", "dashboard", "Dev Processes")).Methods(http.MethodGet)

	// Live snapshot feed
	r.HandleFunc("/ws", wsHandler.ServeWS)

	// Serve static files (CSS, JS, images, etc.)
	staticHandler := http.FileServer(http.FS(staticFS))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticHandler))

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/processes", procHandler.GetProcesses).Methods(http.MethodGet)
	api.HandleFunc("/processes/{pid}", procHandler.GetProcess).Methods(http.MethodGet)

	// Apply middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)

	return &Router{Router: r}, nil
}
