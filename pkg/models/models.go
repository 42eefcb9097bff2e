package models

import "time"

// EmentaRecord is one extracted case summary. Key order (cabecalho first)
// is fixed by the struct layout and relied on by the JSON output.
type EmentaRecord struct {
	Cabecalho string `json:"cabecalho"`
	Ementa    string `json:"ementa"`
}

// Result holds the records extracted in one run plus fetch metadata
type Result struct {
	URL          string
	StatusCode   int
	Records      []EmentaRecord
	HTML         string   // rendered markup, kept for diagnostics and markdown export
	RecordHTML   []string // per-record markup when the engine can provide it
	FetchedAt    time.Time
	ResponseTime int64 // milliseconds
}

// FetchMode selects the engine used to reach the search page
type FetchMode string

const (
	ModeBrowser FetchMode = "browser"
	ModeAPI     FetchMode = "api"
	ModeStatic  FetchMode = "static"
)

// RequestOptions contains per-run options for a fetch
type RequestOptions struct {
	URL         string
	Mode        FetchMode
	Headers     map[string]string
	Timeout     time.Duration
	WaitSeconds int // extra settle time after navigation (browser mode)
	MaxRecords  int
	Proxy       string
}
