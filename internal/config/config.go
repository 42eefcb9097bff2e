package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target
	TargetURL string
	UserAgent string
	Proxy     string

	// Timeouts
	HTTPTimeout   time.Duration
	RenderTimeout time.Duration
	SettleTime    time.Duration

	// Browser
	BrowserHeadless bool
	ChromePath      string

	// Extraction
	MaxRecords int
	Selectors  SelectorSet

	// Outputs
	OutputDir     string
	WriteMarkdown bool

	// Probe politeness
	ProbeRateRPS   float64
	ProbeRateBurst int
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		TargetURL:       DefaultTargetURL,
		UserAgent:       DefaultUserAgent,
		HTTPTimeout:     DefaultHTTPTimeout,
		RenderTimeout:   DefaultRenderTimeout,
		SettleTime:      DefaultSettleTime,
		BrowserHeadless: DefaultBrowserHeadless,
		MaxRecords:      DefaultMaxRecords,
		Selectors:       DefaultSelectorSet(),
		OutputDir:       DefaultOutputDir,
		ProbeRateRPS:    DefaultProbeRateRPS,
		ProbeRateBurst:  DefaultProbeRateBurst,
	}

	// Override from environment variables
	if v := os.Getenv("EMENTAS_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("EMENTAS_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("EMENTAS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("EMENTAS_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.TargetURL = s
			}
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("output-dir"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.OutputDir = s
			}
		}
		if f := cmd.Flags().Lookup("max-records"); f != nil {
			var n int
			if _, err := fmt.Sscanf(f.Value.String(), "%d", &n); err == nil && n > 0 {
				cfg.MaxRecords = n
			}
		}
		if f := cmd.Flags().Lookup("markdown"); f != nil {
			if f.Value.String() == "true" {
				cfg.WriteMarkdown = true
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
		if f := cmd.Flags().Lookup("selectors"); f != nil {
			if path := f.Value.String(); path != "" {
				sel, err := LoadSelectorSet(path)
				if err != nil {
					return nil, fmt.Errorf("invalid selector file: %w", err)
				}
				cfg.Selectors = *sel
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
