package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/ementas/pkg/models"
)

var staticCmd = &cobra.Command{
	Use:   "static",
	Short: "Fetch the search page without a browser (no JavaScript rendering)",
	Long: `Fetches the search page with a plain HTTP request and parses the returned
markup directly. The page is a JavaScript application, so this usually finds
nothing unless the server pre-renders content or embeds it in inline script
state; it is the fallback for environments without Chrome.`,
	Example: `  ementas static
  ementas static --url https://jurisprudencia.jt.jus.br/jurisprudencia-nacional/pesquisa`,
	Args: cobra.NoArgs,
	RunE: runStatic,
}

func init() {
	rootCmd.AddCommand(staticCmd)
}

func runStatic(cmd *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	opts := requestOptions(a, models.ModeStatic)
	log.Info().Str("url", opts.URL).Msg("Starting static extraction")

	result, err := a.Static.Fetch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("static extraction failed: %w", err)
	}

	return persist(a, result)
}
