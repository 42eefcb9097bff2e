package static

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/normalize"
	"github.com/law-makers/ementas/pkg/models"
)

// Field names that mark an object as a record when found in bootstrapped
// script state.
var (
	headerKeys = []string{"cabecalho", "titulo", "processo", "header"}
	bodyKeys   = []string{"ementa", "texto", "conteudo", "resumo"}
)

// sweepInlineScripts executes the page's inline scripts in a sandboxed JS
// runtime with a minimal window mock, then scans the resulting globals for
// arrays of record-shaped objects. SPAs often embed their initial search
// state this way. Script errors are expected (the mock is tiny) and only
// logged.
func sweepInlineScripts(doc *goquery.Document, pageURL string, max int) []models.EmentaRecord {
	vm := goja.New()

	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("location", map[string]interface{}{"href": pageURL})
	vm.Set("document", map[string]interface{}{
		"location": map[string]interface{}{"href": pageURL},
	})
	vm.Set("console", map[string]interface{}{
		"log":   func(call goja.FunctionCall) goja.Value { return nil },
		"error": func(call goja.FunctionCall) goja.Value { return nil },
	})

	executed := 0
	doc.Find("script:not([src])").Each(func(i int, s *goquery.Selection) {
		src := s.Text()
		if strings.TrimSpace(src) == "" {
			return
		}
		if _, err := vm.RunString(src); err != nil {
			log.Debug().Err(err).Int("script", i).Msg("Inline script failed in sandbox")
			return
		}
		executed++
	})
	if executed == 0 {
		return nil
	}

	if max <= 0 {
		max = config.DefaultMaxRecords
	}

	// The window/self aliases point back at the global object; exporting
	// them would recurse forever, so the mock keys are skipped.
	mockKeys := map[string]bool{"window": true, "self": true, "location": true, "document": true, "console": true}

	global := vm.GlobalObject()
	for _, key := range global.Keys() {
		if mockKeys[key] {
			continue
		}
		val := global.Get(key)
		if val == nil {
			continue
		}
		if records := recordsFromValue(val.Export(), max); len(records) > 0 {
			log.Debug().Str("global", key).Int("records", len(records)).Msg("Record array found in script state")
			return records
		}
	}
	return nil
}

// recordsFromValue checks a value (or the values one level inside it) for
// an array of record-shaped objects.
func recordsFromValue(v any, max int) []models.EmentaRecord {
	if arr, ok := v.([]any); ok {
		return recordsFromArray(arr, max)
	}
	if obj, ok := v.(map[string]any); ok {
		for _, inner := range obj {
			if arr, ok := inner.([]any); ok {
				if records := recordsFromArray(arr, max); len(records) > 0 {
					return records
				}
			}
		}
	}
	return nil
}

func recordsFromArray(arr []any, max int) []models.EmentaRecord {
	var records []models.EmentaRecord
	for _, raw := range arr {
		if len(records) >= max {
			break
		}
		item, ok := raw.(map[string]any)
		if !ok {
			return nil
		}
		cabecalho := normalize.Text(firstString(item, headerKeys))
		ementa := normalize.Text(firstString(item, bodyKeys))
		if cabecalho == "" || ementa == "" {
			continue
		}
		records = append(records, models.EmentaRecord{Cabecalho: cabecalho, Ementa: ementa})
	}
	return records
}

func firstString(item map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := item[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
