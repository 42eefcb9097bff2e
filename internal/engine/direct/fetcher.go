// Package direct calls the jurisprudence data API without a browser. The
// endpoint, payload, and response mapping are environment facts discovered
// with devtools and supplied as a request descriptor, not computed here.
package direct

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/engine"
	"github.com/law-makers/ementas/internal/normalize"
	"github.com/law-makers/ementas/internal/ratelimit"
	"github.com/law-makers/ementas/pkg/models"
)

var _ engine.Fetcher = (*Fetcher)(nil)

// Fetcher implements engine.Fetcher against a descriptor-specified API.
type Fetcher struct {
	client     *http.Client
	limiter    *ratelimit.HostLimiter
	userAgent  string
	descriptor config.RequestDescriptor
}

// New creates a direct-API Fetcher with dependency injection.
func New(client *http.Client, limiter *ratelimit.HostLimiter, userAgent string, descriptor config.RequestDescriptor) *Fetcher {
	return &Fetcher{
		client:     client,
		limiter:    limiter,
		userAgent:  userAgent,
		descriptor: descriptor,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "DirectFetcher"
}

// Fetch issues the descriptor's request and maps the JSON response into
// records using its field mapping. Network errors and non-success statuses
// are fatal for the run; a response whose shape drifted from the descriptor
// degrades to an empty record set.
func (f *Fetcher) Fetch(ctx context.Context, opts models.RequestOptions) (*models.Result, error) {
	start := time.Now()

	if err := f.limiter.Wait(ctx, f.descriptor.URL); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := f.buildRequest(ctx, opts)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call data API: %w", err)
	}
	defer resp.Body.Close()

	result := &models.Result{
		URL:        f.descriptor.URL,
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now(),
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("data API returned status %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("data API response is not JSON: %w", err)
	}

	result.Records = MapRecords(body, f.descriptor.Fields, opts.MaxRecords)
	result.ResponseTime = time.Since(start).Milliseconds()

	log.Info().
		Str("url", f.descriptor.URL).
		Int("records", len(result.Records)).
		Int64("response_time_ms", result.ResponseTime).
		Msg("API fetch completed")

	return result, nil
}

func (f *Fetcher) buildRequest(ctx context.Context, opts models.RequestOptions) (*http.Request, error) {
	var body *bytes.Reader
	method := strings.ToUpper(f.descriptor.Method)
	if len(f.descriptor.Payload) > 0 && method != http.MethodGet {
		raw, err := json.Marshal(f.descriptor.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.descriptor.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build API request: %w", err)
	}

	// The origin rejects requests that do not look like they came from the
	// page's own client, so carry a plausible browser header set.
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Content-Type", "application/json")

	for key, value := range f.descriptor.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// MapRecords walks the decoded response to the record array named by the
// field map and extracts the two target fields from each item. A shape
// mismatch yields fewer or zero records, never an error.
func MapRecords(body any, fields config.FieldMap, max int) []models.EmentaRecord {
	if max <= 0 {
		max = config.DefaultMaxRecords
	}

	items := digItems(body, fields.Items)
	if items == nil {
		log.Warn().Str("items_field", fields.Items).Msg("Record array not found in API response")
		return nil
	}

	var records []models.EmentaRecord
	for _, raw := range items {
		if len(records) >= max {
			break
		}
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		cabecalho := normalize.Text(stringField(item, fields.Header))
		ementa := normalize.Text(stringField(item, fields.Body))
		if cabecalho == "" || ementa == "" {
			continue
		}
		records = append(records, models.EmentaRecord{Cabecalho: cabecalho, Ementa: ementa})
	}
	return records
}

// digItems resolves a dotted path (e.g. "resultado.documentos") to the
// record array. An empty path means the response body is the array itself.
func digItems(body any, path string) []any {
	if path == "" {
		arr, _ := body.([]any)
		return arr
	}

	current := body
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[key]
		if !ok {
			return nil
		}
	}
	arr, _ := current.([]any)
	return arr
}

func stringField(item map[string]any, key string) string {
	if key == "" {
		return ""
	}
	v, ok := item[key]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return fmt.Sprintf("%v", s)
	default:
		return ""
	}
}
