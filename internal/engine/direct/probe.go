package direct

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/ratelimit"
)

// ProbeReport describes the first candidate request that produced a JSON
// response. It is a starting point for a human completing the field
// mapping, not a finished descriptor: the tool deliberately has no generic
// API-discovery algorithm.
type ProbeReport struct {
	Method  string         `json:"method"`
	URL     string         `json:"url"`
	Payload map[string]any `json:"payload,omitempty"`
	Keys    []string       `json:"keys,omitempty"`
	Body    any            `json:"body"`
}

// Prober walks the candidate endpoint/payload matrix looking for the data
// API behind the search page.
type Prober struct {
	client    *http.Client
	limiter   *ratelimit.HostLimiter
	userAgent string
	quiet     bool
}

// NewProber creates a Prober with dependency injection.
func NewProber(client *http.Client, limiter *ratelimit.HostLimiter, userAgent string, quiet bool) *Prober {
	return &Prober{client: client, limiter: limiter, userAgent: userAgent, quiet: quiet}
}

// Probe tries each candidate endpoint with GET, then with each POST payload
// template when the method is rejected. Requests are throttled by the host
// limiter. Returns nil when no candidate answered with JSON.
func (p *Prober) Probe(ctx context.Context, baseURL string) (*ProbeReport, error) {
	endpoints := config.ProbeEndpoints(baseURL)
	payloads := config.ProbePayloads()

	bar := progressbar.NewOptions(len(endpoints)*(1+len(payloads)),
		progressbar.OptionSetDescription("probing endpoints"),
		progressbar.OptionSetVisibility(!p.quiet),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	for _, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("probe cancelled: %w", err)
		}

		report, status := p.tryRequest(ctx, http.MethodGet, endpoint, nil)
		bar.Add(1)
		if report != nil {
			return report, nil
		}

		if status != http.StatusNotFound && status != http.StatusMethodNotAllowed {
			// Endpoint does not exist at all (connection error) or GET was
			// conclusive; POST templates are only worth trying when the
			// path exists but wants another method
			bar.Add(len(payloads))
			continue
		}

		for _, payload := range payloads {
			report, _ = p.tryRequest(ctx, http.MethodPost, endpoint, payload)
			bar.Add(1)
			if report != nil {
				return report, nil
			}
		}
	}

	log.Warn().Msg("No data API discovered; inspect the page with browser devtools (Network tab) instead")
	return nil, nil
}

// tryRequest issues one candidate request. Returns a report on a JSON 200,
// otherwise the status code observed (0 on transport error).
func (p *Prober) tryRequest(ctx context.Context, method, url string, payload map[string]any) (*ProbeReport, int) {
	if err := p.limiter.Wait(ctx, url); err != nil {
		return nil, 0
	}

	var bodyReader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0
		}
		bodyReader = bytes.NewReader(raw)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, 0
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Str("method", method).Msg("Probe request failed")
		return nil, 0
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Str("method", method).Int("status", resp.StatusCode).Msg("Probe response")

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// 200 but not JSON: almost certainly the SPA shell page
		return nil, resp.StatusCode
	}

	report := &ProbeReport{
		Method:  method,
		URL:     url,
		Payload: payload,
		Keys:    topLevelKeys(body),
		Body:    body,
	}
	log.Info().Str("url", url).Str("method", method).Strs("keys", report.Keys).Msg("Data API candidate found")
	return report, resp.StatusCode
}

func topLevelKeys(body any) []string {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
