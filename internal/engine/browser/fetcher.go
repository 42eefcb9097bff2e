// Package browser renders the search page in headless Chrome and extracts
// records from the resulting DOM. This is the primary path: the page is an
// Angular application whose initial markup carries no data.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/diag"
	"github.com/law-makers/ementas/internal/engine"
	"github.com/law-makers/ementas/internal/extract"
	"github.com/law-makers/ementas/pkg/models"
)

const (
	containerPollInterval = 500 * time.Millisecond

	// Slack covers browser launch, navigation, and the post-wait markup
	// read so a content timeout never expires the run context itself
	runBudgetSlack = 10 * time.Second
)

var _ engine.Fetcher = (*Fetcher)(nil)

// Fetcher implements engine.Fetcher using headless Chrome via chromedp.
type Fetcher struct {
	selectors     config.SelectorSet
	diag          *diag.Writer
	headless      bool
	userAgent     string
	chromePath    string
	renderTimeout time.Duration
	settle        time.Duration
}

// New creates a browser Fetcher from application configuration.
func New(cfg *config.Config, dw *diag.Writer) *Fetcher {
	return &Fetcher{
		selectors:     cfg.Selectors,
		diag:          dw,
		headless:      cfg.BrowserHeadless,
		userAgent:     cfg.UserAgent,
		chromePath:    cfg.ChromePath,
		renderTimeout: cfg.RenderTimeout,
		settle:        cfg.SettleTime,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "BrowserFetcher"
}

// Fetch navigates to the search page, waits (bounded) for the dynamic
// content container, and extracts records from the rendered markup.
//
// Failure semantics follow the error taxonomy: an unlaunchable browser or a
// failed navigation is fatal; a container that never appears is not. On
// timeout the current markup and a screenshot are dumped for post-mortem
// inspection and the run completes with zero records.
func (f *Fetcher) Fetch(ctx context.Context, opts models.RequestOptions) (*models.Result, error) {
	start := time.Now()

	settle := f.settle
	if opts.WaitSeconds > 0 {
		settle = time.Duration(opts.WaitSeconds) * time.Second
	}
	timeout := runBudget(opts.Timeout, settle, f.renderTimeout)

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(f.userAgent),
	}
	if f.headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if chromePath := FindChrome(f.chromePath); chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	runCtx, runCancel := context.WithTimeout(ctx, timeout)
	defer runCancel()

	// Cancels below release the spawned Chrome process on every exit path
	allocCtx, allocCancel := chromedp.NewExecAllocator(runCtx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	result := &models.Result{
		URL:       opts.URL,
		FetchedAt: time.Now(),
	}

	var statusCode int64
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Response.URL == opts.URL {
				statusCode = resp.Response.Status
			}
		}
	})

	log.Debug().Str("url", opts.URL).Msg("Navigating")
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(opts.URL),
	)
	if err != nil {
		// Covers both an unlaunchable Chrome and an unreachable target
		return nil, fmt.Errorf("failed to open search page: %w", err)
	}

	// Let the Angular bootstrap run before polling for content
	if err := sleepCtx(browserCtx, settle); err != nil {
		return nil, fmt.Errorf("interrupted while waiting for page scripts: %w", err)
	}

	matched, waitErr := f.waitForContainer(browserCtx)

	var htmlContent string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("failed to read rendered markup: %w", err)
	}
	result.HTML = htmlContent
	result.StatusCode = int(statusCode)

	if waitErr != nil {
		// Content never appeared in a known container: dump diagnostics,
		// then still run the extraction pass over whatever rendered; the
		// keyword sweep may salvage records from a drifted page
		log.Warn().Err(waitErr).Msg("Dynamic content did not appear, saving diagnostics")
		f.diag.DumpMarkup(htmlContent)
		f.dumpScreenshot(browserCtx)
	} else {
		log.Debug().Str("selector", matched).Msg("Content container present")
	}

	records, markup, err := extract.FromHTML(htmlContent, extract.Options{
		Selectors:  f.selectors,
		MaxRecords: opts.MaxRecords,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Extraction failed on rendered markup")
	}
	if waitErr == nil && len(records) == 0 {
		// Selector chain matched earlier but produced nothing usable;
		// keep the markup around for a human to inspect
		f.diag.DumpMarkup(htmlContent)
	}

	result.Records = records
	result.RecordHTML = markup
	result.ResponseTime = time.Since(start).Milliseconds()

	log.Info().
		Str("url", opts.URL).
		Int("records", len(records)).
		Int64("response_time_ms", result.ResponseTime).
		Msg("Fetch completed")

	return result, nil
}

// runBudget sizes the run context. A container that never appears must
// still leave room to read the markup and dump diagnostics, so the budget
// never drops below settle plus the render wait plus slack; a larger
// requested timeout raises the ceiling.
func runBudget(requested, settle, render time.Duration) time.Duration {
	floor := settle + render + runBudgetSlack
	if requested > floor {
		return requested
	}
	return floor
}

// waitForContainer polls the DOM until any selector in the fallback chain
// matches, bounded by the render timeout. Returns the selector that matched.
func (f *Fetcher) waitForContainer(ctx context.Context) (string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, f.renderTimeout)
	defer cancel()

	for {
		for _, sel := range f.selectors.Containers {
			var count int
			expr := fmt.Sprintf("document.querySelectorAll(%q).length", sel)
			if err := chromedp.Run(waitCtx, chromedp.Evaluate(expr, &count)); err != nil {
				if waitCtx.Err() != nil {
					return "", fmt.Errorf("timed out after %s waiting for content: %w", f.renderTimeout, waitCtx.Err())
				}
				log.Debug().Err(err).Str("selector", sel).Msg("Selector probe failed")
				continue
			}
			if count > 0 {
				return sel, nil
			}
		}

		if err := sleepCtx(waitCtx, containerPollInterval); err != nil {
			return "", fmt.Errorf("timed out after %s waiting for content: %w", f.renderTimeout, err)
		}
	}
}

func (f *Fetcher) dumpScreenshot(ctx context.Context) {
	var png []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&png, 90)); err != nil {
		log.Warn().Err(err).Msg("Failed to capture screenshot")
		return
	}
	f.diag.DumpScreenshot(png)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
