package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/law-makers/ementas/pkg/models"
)

// SaveMarkdown writes a Markdown export of the collection: one section per
// record, in order. When per-record markup survived extraction it is
// converted; otherwise the normalized text is used directly.
func SaveMarkdown(records []models.EmentaRecord, recordHTML []string, filepath string) error {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	var sb strings.Builder
	sb.WriteString("# Ementas\n\n")
	if len(records) == 0 {
		sb.WriteString("Nenhuma ementa extraída.\n")
	}

	for i, rec := range records {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, rec.Cabecalho)

		body := rec.Ementa
		if i < len(recordHTML) && recordHTML[i] != "" {
			if cleaned, err := CleanHTML(recordHTML[i]); err == nil {
				if converted, err := converter.ConvertString(cleaned); err == nil && strings.TrimSpace(converted) != "" {
					body = strings.TrimSpace(converted)
				}
			}
		}
		sb.WriteString(body + "\n\n")
	}

	if err := os.WriteFile(filepath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown output: %w", err)
	}
	return nil
}
