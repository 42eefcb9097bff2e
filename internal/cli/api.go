package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/ementas/internal/config"
	"github.com/law-makers/ementas/internal/engine/direct"
	"github.com/law-makers/ementas/internal/ui"
	"github.com/law-makers/ementas/pkg/models"
)

var (
	descriptorPath string
	probe          bool
)

// probeReportFile receives the raw response of a successful probe so a
// human can turn it into a full descriptor.
const probeReportFile = "api_resposta.json"

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Call the discovered data API directly, bypassing the browser",
	Long: `Calls the search page's internal data API using a request descriptor
(method, endpoint, payload, and response field mapping) discovered by manual
network inspection. With --probe, walks a list of candidate endpoints and
payload shapes instead and saves the first JSON response for analysis.`,
	Example: `  # Extract using a descriptor captured with browser devtools
  ementas api --descriptor api.json

  # Look for the data API behind the default search URL
  ementas api --probe`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVarP(&descriptorPath, "descriptor", "d", "", "Path to a request-descriptor JSON file")
	apiCmd.Flags().BoolVar(&probe, "probe", false, "Probe candidate endpoints instead of using a descriptor")
}

func runAPI(cmd *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	if probe {
		return runProbe(cmd)
	}
	if descriptorPath == "" {
		return fmt.Errorf("either --descriptor or --probe is required")
	}

	descriptor, err := config.LoadRequestDescriptor(descriptorPath)
	if err != nil {
		return err
	}

	fetcher := direct.New(a.HTTPClient, a.Limiter, a.Config.UserAgent, *descriptor)
	log.Info().Str("url", descriptor.URL).Str("method", descriptor.Method).Msg("Calling data API")

	result, err := fetcher.Fetch(cmd.Context(), requestOptions(a, models.ModeAPI))
	if err != nil {
		return fmt.Errorf("API extraction failed: %w", err)
	}

	return persist(a, result)
}

func runProbe(cmd *cobra.Command) error {
	a := GetApp()

	base, err := url.Parse(a.Config.TargetURL)
	if err != nil {
		return fmt.Errorf("invalid target url: %w", err)
	}
	baseURL := base.Scheme + "://" + base.Host

	prober := direct.NewProber(a.HTTPClient, a.Limiter, a.Config.UserAgent, a.Config.LogLevel == "error")
	report, err := prober.Probe(cmd.Context(), baseURL)
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Printf("%s no data API found; open the page with browser devtools (Network tab), run a search, and capture the XHR call into a descriptor file\n", ui.Warn("!"))
		return nil
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode probe report: %w", err)
	}
	path := filepath.Join(a.Config.OutputDir, probeReportFile)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write probe report: %w", err)
	}

	fmt.Printf("%s data API candidate: %s %s (keys: %v)\n", ui.Success("✓"), report.Method, report.URL, report.Keys)
	fmt.Printf("  response saved to %s; complete the field mapping and rerun with --descriptor\n", path)
	return nil
}
