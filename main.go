package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stash-exporter/internal/config"
	"stash-exporter/internal/exporter"
	"stash-exporter/internal/handlers"
	"stash-exporter/internal/logging"
	"stash-exporter/internal/memory"
	"stash-exporter/internal/metrics"
	"stash-exporter/internal/middleware"
	"stash-exporter/internal/startup"
	"stash-exporter/internal/stash"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Derive GOMEMLIMIT from the container limit before anything
	// sizable is allocated
	memory.ConfigureFromEnv()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	startup.Banner()
	startup.LogConfig(cfg)

	// Stash GraphQL client; every scrape of /metrics goes through it
	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	// The exporter owns the registry and the on-demand collector
	exp, err := exporter.New(client, cfg.Location, cfg.ScrapeTimeout)
	if err != nil {
		startup.LogFatal("Failed to initialize exporter: %v", err)
	}

	// Self-telemetry lives on the same registry
	info := startup.GetBuildInfo()
	selfMetrics := metrics.New(exp.Registerer())
	selfMetrics.SetBuildInfo(info.Version, info.Commit, info.GoVersion)
	selfMetrics.InitializeHTTP(http.MethodGet, "/", "/metrics", "/healthz", "/livez", "/readyz", "/version")

	// Initialize handlers
	h := handlers.New(exp, cfg.StashURL)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router)

	// Apply telemetry middleware
	metricsHandler := middleware.Metrics(selfMetrics, middleware.DefaultMetricsConfig())(router)

	// Apply logging middleware
	loggedHandler := middleware.Logger(middleware.DefaultLoggingConfig())(metricsHandler)

	// Apply compression middleware
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(loggedHandler)

	// Create server. The write timeout leaves room for a full scrape
	// plus encoding before the connection is cut.
	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ScrapeTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            cfg.ListenPort,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Landing).Methods("GET")
	r.HandleFunc("/metrics", h.Metrics).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
