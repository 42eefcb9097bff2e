package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SelectorSet describes where records live on the results page. The page
// structure is not documented and drifts, so selectors are configuration
// with fallbacks, not constants: an exhausted chain degrades to zero
// records instead of a fault.
type SelectorSet struct {
	// Containers is an ordered fallback chain of CSS selectors; the first
	// selector that matches anything wins.
	Containers []string `json:"containers"`

	// Header and Body are optional sub-selectors inside a container. When
	// absent or not matching, the container text is split at its first
	// line break instead.
	Header string `json:"header,omitempty"`
	Body   string `json:"body,omitempty"`

	// Keywords drive the last-resort sweep over generic elements when no
	// container selector matches.
	Keywords []string `json:"keywords,omitempty"`

	// MinSweepLength filters out short fragments during the keyword sweep.
	MinSweepLength int `json:"min_sweep_length,omitempty"`
}

// DefaultSelectorSet returns the chain observed to match jurisprudence
// result pages, most specific first.
func DefaultSelectorSet() SelectorSet {
	return SelectorSet{
		Containers: []string{
			"div[class*='ementa']",
			"div[class*='resultado']",
			"div[class*='acordao']",
			"article",
			"div[class*='item']",
		},
		Keywords:       []string{"RECURSO", "EMENTA", "ACÓRDÃO", "PROCESSO", "DECISÃO"},
		MinSweepLength: 100,
	}
}

// LoadSelectorSet reads a SelectorSet from a JSON file, filling sweep
// defaults for fields the file leaves out.
func LoadSelectorSet(path string) (*SelectorSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selector file: %w", err)
	}

	var sel SelectorSet
	if err := json.Unmarshal(raw, &sel); err != nil {
		return nil, fmt.Errorf("failed to parse selector file: %w", err)
	}
	if len(sel.Containers) == 0 {
		return nil, fmt.Errorf("selector file %s defines no container selectors", path)
	}
	if len(sel.Keywords) == 0 {
		sel.Keywords = DefaultSelectorSet().Keywords
	}
	if sel.MinSweepLength <= 0 {
		sel.MinSweepLength = DefaultSelectorSet().MinSweepLength
	}
	return &sel, nil
}
