package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON to stderr")
	cmd.PersistentFlags().String("url", "", "Search results URL to extract from")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("output-dir", ".", "Directory for ementas.txt / ementas.json")
	cmd.PersistentFlags().Int("max-records", DefaultMaxRecords, "Maximum records to extract per run")
	cmd.PersistentFlags().String("selectors", "", "Path to a selector-set JSON file")
	cmd.PersistentFlags().Bool("markdown", false, "Also write a Markdown export (ementas.md)")
}
