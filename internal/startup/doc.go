// Package startup handles application initialization and
// startup/shutdown logging.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via
// [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent
// output:
//   - [Banner]: Startup banner and system information
//   - [LogConfig]: Effective configuration (credentials masked)
//   - [LogHTTPRoutes]: Registered HTTP routes
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Example Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//	startup.LogConfig(cfg)
//
//	// Start server...
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            cfg.ListenPort,
//	    StartupDuration: time.Since(startTime),
//	})
//
//	// On shutdown...
//	startup.LogShutdownInitiated("SIGTERM")
//	// ... cleanup ...
//	startup.LogShutdownComplete()
package startup
