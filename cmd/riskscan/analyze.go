package main

import (
	"riskscan/internal/adapters/filings/fsdir"
	"riskscan/internal/modkit"
	mmodule "riskscan/internal/modkit/module"
	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/metrics"
	analyzedom "riskscan/internal/services/analyze/domain"
	analyzemod "riskscan/internal/services/analyze/module"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a directory of downloaded filings",
		Long: `Analyze every filing under a downloader directory laid out as
<dir>/1/*.txt, <dir>/2/*.txt, ... with an optional metadata.json per filing.

Example:
  riskscan analyze --filings ./filings/AAPL --limit 5
  riskscan analyze --filings ./filings/AAPL --include-raw --out report.json --metrics-textfile riskscan.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filings, _ := cmd.Flags().GetString("filings")
			out, _ := cmd.Flags().GetString("out")
			textfile, _ := cmd.Flags().GetString("metrics-textfile")

			if filings == "" {
				return perr.WithField(perr.InvalidArgf("--filings is required"), "filings")
			}

			set := metrics.New()
			m, err := analyzemod.New(deps(set), overrides(cmd), modkit.WithPorts(analyzedom.Ports{
				Source: fsdir.New(filings),
			}))
			if err != nil {
				return err
			}

			rep, err := mmodule.MustPortsOf[analyzemod.Ports](m).Runner.RunAll(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), out, rep); err != nil {
				return err
			}
			if textfile != "" {
				return set.WriteTextfile(textfile)
			}
			return nil
		},
	}

	cmd.Flags().String("filings", "", "Directory holding numbered filing folders")
	cmd.Flags().IntP("limit", "n", 0, "Highest filing number to analyze (0 = all)")
	cmd.Flags().Int("workers", 0, "Filings analyzed concurrently (default CORE_ANALYZE_WORKERS or 2)")
	cmd.Flags().Bool("include-raw", false, "List every resolved occurrence per filing and group")
	cmd.Flags().StringP("out", "o", "", "Write the report here instead of stdout")
	cmd.Flags().String("metrics-textfile", "", "Dump run metrics in the node_exporter textfile format")
	engineFlags(cmd)
	return cmd
}

// engineFlags registers the flags shared by every command that builds the engine
func engineFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "Event catalog (.json/.yaml); embedded default when empty")
	cmd.Flags().String("keys", "", "Directory with the four lexicon lists; embedded default when empty")
	cmd.Flags().Int("window-days", 0, "Date search window around the filing date (default CORE_ANALYZE_WINDOW_DAYS or 365)")
}

// overrides collects flag values the analyze module lays over its env config.
// Flags a command does not define read as zero values and are ignored by the merge
func overrides(cmd *cobra.Command) analyzemod.Options {
	var o analyzemod.Options
	o.CatalogPath, _ = cmd.Flags().GetString("catalog")
	o.KeysDir, _ = cmd.Flags().GetString("keys")
	o.WindowDays, _ = cmd.Flags().GetInt("window-days")
	o.Workers, _ = cmd.Flags().GetInt("workers")
	o.Limit, _ = cmd.Flags().GetInt("limit")
	o.IncludeRaw, _ = cmd.Flags().GetBool("include-raw")
	return o
}
