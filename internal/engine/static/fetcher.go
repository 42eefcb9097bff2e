// Package static fetches the search page with a plain HTTP GET. The page
// is a JavaScript application, so this path usually sees the empty shell;
// it exists for environments without Chrome and degrades through goquery
// selectors, a keyword sweep, and an inline-script state sweep before
// giving up.
package static

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/diag"
	"github.com/law-makers/ementas/internal/engine"
	"github.com/law-makers/ementas/internal/extract"
	"github.com/law-makers/ementas/internal/ratelimit"
	"github.com/law-makers/ementas/pkg/models"
)

var _ engine.Fetcher = (*Fetcher)(nil)

// Fetcher implements engine.Fetcher over raw HTTP and goquery.
type Fetcher struct {
	client    *http.Client
	limiter   *ratelimit.HostLimiter
	selectors config.SelectorSet
	userAgent string
	diag      *diag.Writer
}

// New creates a static Fetcher with dependency injection.
func New(client *http.Client, limiter *ratelimit.HostLimiter, selectors config.SelectorSet, userAgent string, dw *diag.Writer) *Fetcher {
	return &Fetcher{
		client:    client,
		limiter:   limiter,
		selectors: selectors,
		userAgent: userAgent,
		diag:      dw,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch retrieves and parses the search page without rendering it.
// Transport errors and non-success statuses are fatal; a page that parses
// but yields nothing degrades to zero records with a markup dump.
func (f *Fetcher) Fetch(ctx context.Context, opts models.RequestOptions) (*models.Result, error) {
	start := time.Now()

	if err := f.limiter.Wait(ctx, opts.URL); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("access blocked by the server (403); the site may require JavaScript or reject scrapers")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	htmlContent := string(raw)

	result := &models.Result{
		URL:        opts.URL,
		StatusCode: resp.StatusCode,
		HTML:       htmlContent,
		FetchedAt:  time.Now(),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	xopts := extract.Options{Selectors: f.selectors, MaxRecords: opts.MaxRecords}
	records := extract.FromDocument(doc, xopts)
	if len(records) > 0 {
		_, markup, _ := extract.FromHTML(htmlContent, xopts)
		result.RecordHTML = markup
	} else {
		// Shell page: the data may still sit in an inline script as
		// bootstrapped state
		log.Debug().Msg("No records in markup, sweeping inline scripts")
		records = sweepInlineScripts(doc, opts.URL, opts.MaxRecords)
	}

	if len(records) == 0 {
		log.Warn().Msg("No records found in static markup, saving it for analysis")
		f.diag.DumpMarkup(htmlContent)
	}

	result.Records = records
	result.ResponseTime = time.Since(start).Milliseconds()

	log.Info().
		Str("url", opts.URL).
		Int("status", resp.StatusCode).
		Int("records", len(records)).
		Int64("response_time_ms", result.ResponseTime).
		Msg("Static fetch completed")

	return result, nil
}
