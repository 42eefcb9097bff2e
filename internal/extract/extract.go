// Package extract locates case-summary blocks in materialized HTML and
// turns them into records.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/normalize"
	"github.com/law-makers/ementas/pkg/models"
)

// Options controls a single extraction pass.
type Options struct {
	Selectors  config.SelectorSet
	MaxRecords int
}

// FromHTML extracts records from rendered markup. The container selector
// chain is tried in order; when it is exhausted a keyword sweep over generic
// elements runs instead. Structural drift degrades to fewer or zero records,
// never to an error. The returned markup slice is parallel to the records.
func FromHTML(htmlContent string, opts Options) ([]models.EmentaRecord, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc, opts), recordMarkup(doc, opts), nil
}

// FromDocument extracts records from an already-parsed document.
func FromDocument(doc *goquery.Document, opts Options) []models.EmentaRecord {
	containers := findContainers(doc, opts.Selectors)
	if containers == nil {
		return nil
	}

	max := opts.MaxRecords
	if max <= 0 {
		max = config.DefaultMaxRecords
	}

	var records []models.EmentaRecord
	containers.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(records) >= max {
			return false
		}
		rec, ok := buildRecord(s, opts.Selectors, len(records))
		if ok {
			records = append(records, rec)
		}
		return true
	})

	log.Debug().Int("records", len(records)).Msg("Extraction pass complete")
	return records
}

// findContainers walks the fallback chain, then falls back to the keyword
// sweep. Returns nil when nothing on the page looks like a record.
func findContainers(doc *goquery.Document, selectors config.SelectorSet) *goquery.Selection {
	for _, sel := range selectors.Containers {
		found := doc.Find(sel)
		if found.Length() > 0 {
			log.Debug().Str("selector", sel).Int("count", found.Length()).Msg("Container selector matched")
			return found
		}
	}

	log.Warn().Msg("No container selector matched, sweeping for record-like text")
	return keywordSweep(doc, selectors)
}

// keywordSweep scans generic block elements for long text mentioning the
// configured case-law keywords. Last resort before reporting zero records.
func keywordSweep(doc *goquery.Document, selectors config.SelectorSet) *goquery.Selection {
	if len(selectors.Keywords) == 0 {
		return nil
	}

	minLen := selectors.MinSweepLength
	if minLen <= 0 {
		minLen = 100
	}

	matched := doc.Find("div, p, article, section").FilterFunction(func(i int, s *goquery.Selection) bool {
		text := strings.ToUpper(strings.TrimSpace(s.Text()))
		if len(text) < minLen {
			return false
		}
		for _, kw := range selectors.Keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	})

	if matched.Length() == 0 {
		return nil
	}
	log.Debug().Int("count", matched.Length()).Msg("Keyword sweep matched elements")
	return matched
}

// buildRecord reads one container. Sub-selectors win when they match;
// otherwise the container text is split at its first line break, with a
// synthetic header for single-line containers. Records that normalize to
// empty are discarded.
func buildRecord(s *goquery.Selection, selectors config.SelectorSet, idx int) (models.EmentaRecord, bool) {
	var cabecalho, ementa string

	if selectors.Header != "" && selectors.Body != "" {
		h := s.Find(selectors.Header)
		b := s.Find(selectors.Body)
		if h.Length() > 0 && b.Length() > 0 {
			cabecalho = normalize.Text(h.First().Text())
			ementa = normalize.Text(b.First().Text())
		}
	}

	if cabecalho == "" || ementa == "" {
		lines := normalize.Lines(s.Text())
		switch {
		case len(lines) > 1:
			cabecalho = lines[0]
			ementa = strings.Join(lines[1:], " ")
		case len(lines) == 1:
			cabecalho = fmt.Sprintf("Ementa %d", idx+1)
			ementa = lines[0]
		}
	}

	if cabecalho == "" || ementa == "" {
		return models.EmentaRecord{}, false
	}
	return models.EmentaRecord{Cabecalho: cabecalho, Ementa: ementa}, true
}

// recordMarkup captures the outer HTML of each container that produced a
// record, for the markdown export. Mirrors the record-building walk so the
// slice stays parallel to the records.
func recordMarkup(doc *goquery.Document, opts Options) []string {
	containers := findContainers(doc, opts.Selectors)
	if containers == nil {
		return nil
	}

	max := opts.MaxRecords
	if max <= 0 {
		max = config.DefaultMaxRecords
	}

	var markup []string
	containers.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(markup) >= max {
			return false
		}
		if _, ok := buildRecord(s, opts.Selectors, len(markup)); !ok {
			return true
		}
		if h, err := goquery.OuterHtml(s); err == nil {
			markup = append(markup, h)
		} else {
			markup = append(markup, "")
		}
		return true
	})
	return markup
}
