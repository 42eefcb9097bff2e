// Package output writes the extracted record collection to its sinks.
// Write failures are always surfaced to the caller: silent data loss would
// defeat the whole point of a batch extraction tool.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/law-makers/ementas/pkg/models"
)

const separatorWidth = 80

// FormatReport renders the plain-text report: a fixed-width separator, a
// 1-based EMENTA N label, then the labeled header and body blocks, in
// collection order.
func FormatReport(records []models.EmentaRecord) string {
	if len(records) == 0 {
		return "Nenhuma ementa extraída (0 ementas).\n"
	}

	sep := strings.Repeat("=", separatorWidth)
	var sb strings.Builder
	for i, rec := range records {
		sb.WriteString(sep + "\n")
		fmt.Fprintf(&sb, "EMENTA %d\n", i+1)
		sb.WriteString(sep + "\n\n")
		fmt.Fprintf(&sb, "CABEÇALHO:\n%s\n\n", rec.Cabecalho)
		fmt.Fprintf(&sb, "EMENTA:\n%s\n\n", rec.Ementa)
	}
	return sb.String()
}

// SaveReport overwrites the text report at filepath.
func SaveReport(records []models.EmentaRecord, filepath string) error {
	if err := os.WriteFile(filepath, []byte(FormatReport(records)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
