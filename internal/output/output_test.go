package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/ementas/pkg/models"
)

var sampleRecords = []models.EmentaRecord{
	{Cabecalho: "Processo 123", Ementa: "Texto da ementa um."},
	{Cabecalho: "Processo 456", Ementa: "Texto da ementa dois."},
}

func TestMarshalRecordsExactBytes(t *testing.T) {
	got, err := MarshalRecords(sampleRecords)
	if err != nil {
		t.Fatalf("MarshalRecords failed: %v", err)
	}
	want := `[{"cabecalho":"Processo 123","ementa":"Texto da ementa um."},{"cabecalho":"Processo 456","ementa":"Texto da ementa dois."}]`
	if string(got) != want {
		t.Errorf("JSON output = %s, want %s", got, want)
	}
}

func TestSaveJSONFileIsExactlyTheArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ementas.json")
	if err := SaveJSON(sampleRecords, path); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"cabecalho":"Processo 123","ementa":"Texto da ementa um."},{"cabecalho":"Processo 456","ementa":"Texto da ementa dois."}]`
	if string(got) != want {
		t.Errorf("file bytes = %q, want %q", got, want)
	}
}

func TestMarshalRecordsEmpty(t *testing.T) {
	got, err := MarshalRecords(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("empty collection = %q, want []", got)
	}
}

func TestMarshalRecordsPreservesAccents(t *testing.T) {
	records := []models.EmentaRecord{
		{Cabecalho: "ACÓRDÃO nº 42", Ementa: "Decisão unânime; provimento não conhecido."},
	}
	got, err := MarshalRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(got, []byte("ACÓRDÃO")) || !bytes.Contains(got, []byte("Decisão")) {
		t.Errorf("accented text was escaped: %s", got)
	}
	if bytes.Contains(got, []byte(`\u`)) {
		t.Errorf("output contains unicode escapes: %s", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	first, err := MarshalRecords(sampleRecords)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := UnmarshalRecords(first)
	if err != nil {
		t.Fatalf("UnmarshalRecords failed: %v", err)
	}
	second, err := MarshalRecords(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip not byte-identical:\n%s\n%s", first, second)
	}
}

func TestFormatReport(t *testing.T) {
	report := FormatReport(sampleRecords)

	sep := strings.Repeat("=", 80)
	if !strings.Contains(report, sep) {
		t.Error("report missing separator line")
	}
	if !strings.Contains(report, "EMENTA 1\n") || !strings.Contains(report, "EMENTA 2\n") {
		t.Error("report missing numbered labels")
	}
	if !strings.Contains(report, "CABEÇALHO:\nProcesso 123\n") {
		t.Error("report missing labeled header block")
	}
	if !strings.Contains(report, "EMENTA:\nTexto da ementa dois.\n") {
		t.Error("report missing labeled body block")
	}
	// Order preservation: record 1 appears before record 2
	if strings.Index(report, "Processo 123") > strings.Index(report, "Processo 456") {
		t.Error("report does not preserve collection order")
	}
}

func TestFormatReportEmpty(t *testing.T) {
	report := FormatReport(nil)
	if !strings.Contains(report, "0 ementas") {
		t.Errorf("empty report = %q, want the no-record state", report)
	}
	if strings.Contains(report, "CABEÇALHO") {
		t.Error("empty report must not contain record sections")
	}
}

func TestSinksAgreeOnCount(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "ementas.txt")
	jsonPath := filepath.Join(dir, "ementas.json")

	if err := SaveReport(sampleRecords, txtPath); err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(sampleRecords, jsonPath); err != nil {
		t.Fatal(err)
	}

	txt, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatal(err)
	}
	jsonRaw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := UnmarshalRecords(jsonRaw)
	if err != nil {
		t.Fatal(err)
	}
	txtCount := strings.Count(string(txt), "CABEÇALHO:")
	if txtCount != len(parsed) {
		t.Errorf("text report has %d records, JSON has %d", txtCount, len(parsed))
	}
	// The Nth record corresponds across both sinks
	for i, rec := range parsed {
		if !strings.Contains(string(txt), rec.Cabecalho) {
			t.Errorf("record %d header %q missing from text report", i, rec.Cabecalho)
		}
	}
}

func TestSaveJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ementas.json")
	if err := os.WriteFile(path, []byte("conteúdo antigo"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(nil, path); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("file not overwritten, got %q", got)
	}
}

func TestSaveMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ementas.md")
	recordHTML := []string{
		`<article><h3>Processo 123</h3><p>Texto da <strong>ementa</strong> um.</p></article>`,
		"",
	}
	if err := SaveMarkdown(sampleRecords, recordHTML, path); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(got)
	if !strings.Contains(md, "## 1. Processo 123") || !strings.Contains(md, "## 2. Processo 456") {
		t.Errorf("markdown missing ordered sections:\n%s", md)
	}
	if !strings.Contains(md, "**ementa**") {
		t.Errorf("markup was not converted:\n%s", md)
	}
	// Second record fell back to the normalized text
	if !strings.Contains(md, "Texto da ementa dois.") {
		t.Errorf("fallback body missing:\n%s", md)
	}
}

func TestCleanHTML(t *testing.T) {
	dirty := `<div class="x" style="color:red"><script>alert(1)</script><p id="p1">Texto</p><a href="/doc" class="lnk">link</a></div>`
	cleaned, err := CleanHTML(dirty)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(cleaned, "script") || strings.Contains(cleaned, "style=") || strings.Contains(cleaned, "class=") {
		t.Errorf("noise survived cleanup: %s", cleaned)
	}
	if !strings.Contains(cleaned, `href="/doc"`) {
		t.Errorf("anchor target lost: %s", cleaned)
	}
}
