package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultTargetURL = "https://jurisprudencia.jt.jus.br/jurisprudencia-nacional/pesquisa"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRenderTimeout   = 20 * time.Second
	DefaultSettleTime      = 5 * time.Second
	DefaultBrowserHeadless = true

	// The results page shows one page of hits; the original tooling caps
	// extraction at the first 20 containers.
	DefaultMaxRecords = 20

	DefaultOutputDir    = "."
	DefaultReportFile   = "ementas.txt"
	DefaultJSONFile     = "ementas.json"
	DefaultMarkdownFile = "ementas.md"

	// Politeness budget for the API probe loop: one request per second
	// against a single public host.
	DefaultProbeRateRPS   = 1.0
	DefaultProbeRateBurst = 2
)
