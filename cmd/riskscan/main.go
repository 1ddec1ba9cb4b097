// Command riskscan extracts dangerous sentences and dated risk events from regulatory filings
package main

import (
	"context"
	"io"
	"os"
	"time"

	"riskscan/internal/core/version"
	"riskscan/internal/modkit"
	"riskscan/internal/platform/config"
	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/logger"
	"riskscan/internal/platform/metrics"

	"github.com/spf13/cobra"
)

// now is the clock used for today; swapped in tests
var now = time.Now

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome to a sysexits status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opt := logger.FromEnv()
	opt.Writer = stderr
	logger.Init(opt)
	l := logger.Named("cli")

	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		code := perr.ExitCode(err)
		if _, ok := perr.As(err); !ok {
			// cobra flag and arg errors
			code = perr.ExitUsage
		}
		l.Error().Err(err).Str("code", perr.CodeOf(err).String()).Int("exit", code).Msg("riskscan failed")
		return code
	}
	return perr.ExitOK
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "riskscan",
		Short: "Risk signal extraction for regulatory filings",
		Long: `riskscan reads plain-text filings and reports, per filing:
  - ranked dangerous sentences carrying material risk language
  - detected events grouped by type, anchored to the nearest date with
    an expected end and a past/ongoing/future status

Configuration comes from CORE_ANALYZE_* and CORE_RISK_* environment
variables; flags override them. Reports go to stdout, logs to stderr.`,
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(analyzeCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(sentencesCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(versionCmd())
	return root
}

// deps builds the shared module dependencies
func deps(rec metrics.Recorder) modkit.Deps {
	return modkit.Deps{
		Log:     *logger.Named("analyze"),
		Cfg:     config.New(),
		Metrics: rec,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), "", version.Info())
		},
	}
}
