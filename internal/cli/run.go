package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/law-makers/ementas/internal/app"
	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/diag"
	"github.com/law-makers/ementas/internal/output"
	"github.com/law-makers/ementas/internal/ui"
	"github.com/law-makers/ementas/pkg/models"
)

// requestOptions builds the per-run options shared by all subcommands.
func requestOptions(a *app.Application, mode models.FetchMode) models.RequestOptions {
	return models.RequestOptions{
		URL:        a.Config.TargetURL,
		Mode:       mode,
		Timeout:    a.Config.HTTPTimeout,
		MaxRecords: a.Config.MaxRecords,
		Proxy:      a.Config.Proxy,
	}
}

// persist writes the record collection to every configured sink. Write
// failures abort: producing these files is the whole point of the run.
func persist(a *app.Application, result *models.Result) error {
	dir := a.Config.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reportPath := filepath.Join(dir, config.DefaultReportFile)
	if err := output.SaveReport(result.Records, reportPath); err != nil {
		return err
	}

	jsonPath := filepath.Join(dir, config.DefaultJSONFile)
	if err := output.SaveJSON(result.Records, jsonPath); err != nil {
		return err
	}

	if a.Config.WriteMarkdown {
		mdPath := filepath.Join(dir, config.DefaultMarkdownFile)
		if err := output.SaveMarkdown(result.Records, result.RecordHTML, mdPath); err != nil {
			return err
		}
	}

	if len(result.Records) == 0 {
		fmt.Printf("%s %s\n", ui.Warn("!"), zeroRecordHint(dir))
	} else {
		fmt.Printf("%s %d ementas saved to %s and %s\n",
			ui.Success("✓"), len(result.Records), reportPath, jsonPath)
	}
	return nil
}

// zeroRecordHint points at the markup dump only when one was written;
// the direct-API path produces no dump to inspect.
func zeroRecordHint(dir string) string {
	dump := filepath.Join(dir, diag.MarkupFile)
	if _, err := os.Stat(dump); err == nil {
		return fmt.Sprintf("no records extracted; see %s for the page state", dump)
	}
	return "no records extracted"
}
