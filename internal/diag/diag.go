// Package diag writes post-mortem artifacts when content never
// materializes. It is a side channel off the failure path: its own errors
// are logged and swallowed so they cannot mask the condition that
// triggered it.
package diag

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	// MarkupFile is the saved copy of the rendered page for human analysis
	MarkupFile = "pagina.html"
	// ScreenshotFile is the page snapshot captured by the browser engine
	ScreenshotFile = "erro.png"
)

// Writer drops diagnostic artifacts into a fixed directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer targeting dir ("." when empty).
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// DumpMarkup saves the current page markup. Best effort.
func (w *Writer) DumpMarkup(html string) {
	if html == "" {
		return
	}
	path := filepath.Join(w.dir, MarkupFile)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to save page markup")
		return
	}
	log.Info().Str("path", path).Msg("Page markup saved for analysis")
}

// DumpScreenshot saves a PNG snapshot of the page. Best effort.
func (w *Writer) DumpScreenshot(png []byte) {
	if len(png) == 0 {
		return
	}
	path := filepath.Join(w.dir, ScreenshotFile)
	if err := os.WriteFile(path, png, 0644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to save screenshot")
		return
	}
	log.Info().Str("path", path).Msg("Screenshot saved for analysis")
}
