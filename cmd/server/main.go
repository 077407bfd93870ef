package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isabel-dlai/process-viewer/internal/api"
	"github.com/isabel-dlai/process-viewer/internal/config"
	"github.com/isabel-dlai/process-viewer/internal/scanner"
	"github.com/isabel-dlai/process-viewer/internal/service"
	"github.com/isabel-dlai/process-viewer/web"
)

func main() {
	configPath := flag.String("config", "viewer.yaml", "Path to viewer configuration file")
	once := flag.Bool("once", false, "Scan once, print the snapshot as JSON and exit")
	flag.Parse()

	// Load server config
	cfg := config.LoadConfig()

	// Load viewer configuration
	viewerCfg, err := config.LoadViewerConfig(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load viewer config from %s: %v", *configPath, err)
		log.Println("Using defaults. Create viewer.yaml to tune the poll interval.")
		viewerCfg = config.DefaultViewerConfig()
	}

	sc := scanner.New()

	if *once {
		runOnce(sc)
		return
	}

	// The hub fans each captured snapshot out to connected dashboards
	hub := service.NewHub()
	monitor := service.NewMonitor(sc.Scan, viewerCfg.Interval(), hub)

	monCtx, monCancel := context.WithCancel(context.Background())
	defer monCancel()
	go monitor.Run(monCtx)

	// Create router
	router, err := api.NewRouter(monitor, sc, hub, viewerCfg.IntervalSeconds, web.Templates(), web.Static())
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting process viewer on %s", cfg.Server.Address)
		log.Printf("Scanning the process table every %ds", viewerCfg.IntervalSeconds)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the scan loop before the HTTP server so no broadcast races shutdown
	monCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

// runOnce performs a single scan and prints the snapshot, for scripting and
// for checking what the classifier sees without starting the server.
func runOnce(sc *scanner.Scanner) {
	monitor := service.NewMonitor(sc.Scan, time.Second, nil)

	snap, err := monitor.RunOnce(context.Background())
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode snapshot: %v", err)
	}
	fmt.Println(string(out))
}
