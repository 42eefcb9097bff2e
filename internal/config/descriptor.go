package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldMap names the response fields that carry the record array and the
// two target fields of each item. Items may be a dotted path
// (e.g. "resultado.documentos").
type FieldMap struct {
	Items  string `json:"items"`
	Header string `json:"header"`
	Body   string `json:"body"`
}

// RequestDescriptor is the pluggable description of the reverse-engineered
// data API: method, endpoint, payload, and response mapping are environment
// facts discovered with browser devtools, supplied as configuration rather
// than computed.
type RequestDescriptor struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Payload map[string]any    `json:"payload,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Fields  FieldMap          `json:"fields"`
}

// LoadRequestDescriptor reads a RequestDescriptor from a JSON file.
func LoadRequestDescriptor(path string) (*RequestDescriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}

	var d RequestDescriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor file: %w", err)
	}
	if d.URL == "" {
		return nil, fmt.Errorf("descriptor %s has no url", path)
	}
	if d.Method == "" {
		d.Method = "GET"
	}
	if d.Fields.Header == "" || d.Fields.Body == "" {
		return nil, fmt.Errorf("descriptor %s must map both header and body fields", path)
	}
	return &d, nil
}

// ProbeEndpoints are the API paths worth trying against the jurisprudence
// host, collected by manual inspection of similar court systems.
func ProbeEndpoints(baseURL string) []string {
	paths := []string{
		"/api/pesquisa",
		"/api/jurisprudencia",
		"/api/acordaos",
		"/api/ementas",
		"/api/consulta",
		"/jurisprudencia-nacional/api/pesquisa",
		"/jurisprudencia-nacional/api/acordaos",
	}
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		urls = append(urls, baseURL+p)
	}
	return urls
}

// ProbePayloads returns the search payload shapes typical of jurisprudence
// backends, tried in order against each candidate endpoint.
func ProbePayloads() []map[string]any {
	return []map[string]any{
		{"termo": "", "pagina": 1, "tamanhoPagina": 20},
		{"query": "", "page": 1, "size": 20},
		{"pesquisa": map[string]any{"termo": "*", "pagina": 0, "itensPorPagina": 20}},
		{"filtros": map[string]any{}, "pagina": 1, "quantidade": 20},
	}
}
