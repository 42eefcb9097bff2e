// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/diag"
	"github.com/law-makers/ementas/internal/engine/browser"
	"github.com/law-makers/ementas/internal/engine/static"
	"github.com/law-makers/ementas/internal/ratelimit"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	Limiter    *ratelimit.HostLimiter
	HTTPClient *http.Client
	Diag       *diag.Writer
	Browser    *browser.Fetcher
	Static     *static.Fetcher
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging, the politeness rate limiter, the HTTP client, the
// diagnostics writer, and the fetch engines. The direct-API fetcher is not
// built here: it needs a request descriptor that arrives per command.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	limiter := ratelimit.NewHostLimiter(cfg.ProbeRateRPS, cfg.ProbeRateBurst)
	logger.Debug().
		Float64("rps", cfg.ProbeRateRPS).
		Int("burst", cfg.ProbeRateBurst).
		Msg("Rate limiter initialized")

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger.Debug().Dur("timeout", cfg.HTTPTimeout).Msg("HTTP client initialized")

	diagWriter := diag.NewWriter(cfg.OutputDir)

	appCtx := &Application{
		Config:     cfg,
		Logger:     &logger,
		Limiter:    limiter,
		HTTPClient: httpClient,
		Diag:       diagWriter,
		Browser:    browser.New(cfg, diagWriter),
		Static:     static.New(httpClient, limiter, cfg.Selectors, cfg.UserAgent, diagWriter),
		startTime:  time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return appCtx, nil
}

// Close gracefully shuts down the application.
//
// The Chrome process is scoped to a single fetch and released inside the
// browser engine on every exit path; what remains here is connection
// cleanup and a final log line.
func (a *Application) Close(ctx context.Context) error {
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
