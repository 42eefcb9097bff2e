package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/ementas/internal/engine/browser"
	"github.com/law-makers/ementas/pkg/models"
)

var (
	waitSeconds int
	noHeadless  bool
	chromePath  string
)

// extractCmd drives headless Chrome, the primary path for a page whose
// initial markup carries no data.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Render the search page in headless Chrome and extract ementas",
	Long: `Launches a headless Chrome instance, navigates to the search results page,
waits for the dynamically-injected content, and extracts the case summaries
from the rendered document. On a content timeout the page markup and a
screenshot are saved for inspection and the run completes with zero records.`,
	Example: `  # Default run against the national jurisprudence search
  ementas extract

  # Give the page more time to render and keep the browser visible
  ementas extract --wait 10 --no-headless

  # Custom selectors and output directory
  ementas extract --selectors seletores.json --output-dir ./saida`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVarP(&waitSeconds, "wait", "w", 0, "Extra seconds to wait after navigation before polling for content")
	extractCmd.Flags().BoolVar(&noHeadless, "no-headless", false, "Run Chrome with a visible window")
	extractCmd.Flags().StringVar(&chromePath, "chrome-path", "", "Path to the Chrome/Chromium executable")
}

func runExtract(cmd *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	fetcher := a.Browser
	if noHeadless || chromePath != "" {
		// Rebuild with the command-local browser flags applied
		a.Config.BrowserHeadless = a.Config.BrowserHeadless && !noHeadless
		if chromePath != "" {
			a.Config.ChromePath = chromePath
		}
		fetcher = browser.New(a.Config, a.Diag)
	}

	opts := requestOptions(a, models.ModeBrowser)
	opts.WaitSeconds = waitSeconds

	log.Info().Str("url", opts.URL).Msg("Starting browser extraction")
	result, err := fetcher.Fetch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return persist(a, result)
}
