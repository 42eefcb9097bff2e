package static

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/diag"
	"github.com/law-makers/ementas/internal/ratelimit"
	"github.com/law-makers/ementas/pkg/models"
)

func newTestFetcher(t *testing.T, client *http.Client) *Fetcher {
	t.Helper()
	return New(client, ratelimit.NewHostLimiter(1000, 1000), config.DefaultSelectorSet(), "test-agent", diag.NewWriter(t.TempDir()))
}

func TestFetchExtractsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte(`<html><body>
			<article>Processo 123
Texto da ementa um.</article>
			<article>Processo 456
Texto da ementa dois.</article>
		</body></html>`))
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.Client())
	result, err := f.Fetch(context.Background(), models.RequestOptions{URL: srv.URL, MaxRecords: 20})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Records[0].Cabecalho != "Processo 123" {
		t.Errorf("record order wrong: %+v", result.Records)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d", result.StatusCode)
	}
}

func TestFetchForbiddenIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.Client())
	_, err := f.Fetch(context.Background(), models.RequestOptions{URL: srv.URL})
	if err == nil {
		t.Fatal("expected error on 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should mention the block: %v", err)
	}
}

func TestFetchEmptyShellDegradesToZero(t *testing.T) {
	dir := t.TempDir()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><app-root></app-root></body></html>`))
	}))
	defer srv.Close()

	f := New(srv.Client(), ratelimit.NewHostLimiter(1000, 1000), config.DefaultSelectorSet(), "test-agent", diag.NewWriter(dir))
	result, err := f.Fetch(context.Background(), models.RequestOptions{URL: srv.URL})
	if err != nil {
		t.Fatalf("empty shell must not be an error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
}

func TestSweepInlineScripts(t *testing.T) {
	html := `<html><body>
	<script>
		window.__ESTADO__ = {
			documentos: [
				{titulo: "Processo 123", ementa: "Texto da ementa um."},
				{titulo: "Processo 456", ementa: "Texto da ementa dois."}
			]
		};
	</script>
	<app-root></app-root>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	records := sweepInlineScripts(doc, "https://example.com/pesquisa", 20)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(records), records)
	}
	if records[0].Cabecalho != "Processo 123" || records[1].Ementa != "Texto da ementa dois." {
		t.Errorf("records = %+v", records)
	}
}

func TestSweepIgnoresNonRecordState(t *testing.T) {
	html := `<html><body>
	<script>
		var contagem = [1, 2, 3];
		var nomes = ["a", "b"];
	</script>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	if records := sweepInlineScripts(doc, "https://example.com/", 20); len(records) != 0 {
		t.Errorf("got %d records from non-record state", len(records))
	}
}

func TestSweepSurvivesBrokenScripts(t *testing.T) {
	html := `<html><body>
	<script>this is not javascript at all {{{</script>
	<script>var documentos = [{cabecalho: "Processo 1", ementa: "Texto."}];</script>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	records := sweepInlineScripts(doc, "https://example.com/", 20)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Cabecalho != "Processo 1" {
		t.Errorf("records = %+v", records)
	}
}
