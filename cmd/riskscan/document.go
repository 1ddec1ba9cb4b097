package main

import (
	"riskscan/internal/adapters/filings/fsdir"
	"riskscan/internal/core/normalize"
	"riskscan/internal/core/report"
	mmodule "riskscan/internal/modkit/module"
	"riskscan/internal/platform/metrics"
	ptime "riskscan/internal/platform/time"
	analyzedom "riskscan/internal/services/analyze/domain"
	analyzemod "riskscan/internal/services/analyze/module"

	"github.com/spf13/cobra"
)

// eventsOutput is the single-document events report
type eventsOutput struct {
	Document    string                  `json:"document"`
	FilingDate  string                  `json:"filing_date"`
	WindowDays  int                     `json:"window_days"`
	EventCount  int                     `json:"event_count"`
	Groups      []report.EventGroupView `json:"detected_event_categories"`
	Occurrences []report.OccurrenceView `json:"detected_events,omitempty"`
}

// sentencesOutput is the single-document sentences report
type sentencesOutput struct {
	Document  string   `json:"document"`
	Sentences []string `json:"sentences"`
}

// engine loads the analyze module without a filing source
func engine(cmd *cobra.Command) (analyzedom.EnginePort, analyzemod.Options, error) {
	m, err := analyzemod.New(deps(metrics.Nop{}), overrides(cmd))
	if err != nil {
		return nil, analyzemod.Options{}, err
	}
	return mmodule.MustPortsOf[analyzemod.Ports](m).Engine, m.Options(), nil
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Detect, date and group events in one document",
		Long: `Detect events in one plain-text document, anchor each to the nearest
date reference within the window around --filing-date, and group them by type.

Example:
  riskscan events 10-K.txt --filing-date 2023-03-01 --window-days 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, _ := cmd.Flags().GetString("filing-date")
			out, _ := cmd.Flags().GetString("out")

			fd, err := fsdir.ParseFilingDate(dateFlag)
			if err != nil {
				return err
			}
			raw, err := fsdir.ReadFile(args[0])
			if err != nil {
				return err
			}
			eng, opts, err := engine(cmd)
			if err != nil {
				return err
			}

			text := normalize.Clean(raw)
			occs := eng.DetectEvents(text)
			rs, groups := eng.ResolveAndAggregate(text, occs, fd, opts.WindowDays, ptime.Day(now()))

			res := eventsOutput{
				Document:   args[0],
				FilingDate: report.NA,
				WindowDays: opts.WindowDays,
				EventCount: len(occs),
				Groups:     report.Groups(groups, opts.IncludeRaw),
			}
			if fd != nil {
				res.FilingDate = fd.Format(ptime.DateLayout)
			}
			if res.Groups == nil {
				res.Groups = []report.EventGroupView{}
			}
			if opts.IncludeRaw {
				res.Occurrences = report.Occurrences(rs)
			}
			return writeJSON(cmd.OutOrStdout(), out, res)
		},
	}
	cmd.Flags().String("filing-date", "", "Filing date YYYY-MM-DD bounding the date search")
	cmd.Flags().Bool("include-raw", false, "List every resolved occurrence")
	cmd.Flags().StringP("out", "o", "", "Write the report here instead of stdout")
	engineFlags(cmd)
	return cmd
}

func sentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences FILE",
		Short: "Rank the dangerous sentences of one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			raw, err := fsdir.ReadFile(args[0])
			if err != nil {
				return err
			}
			eng, _, err := engine(cmd)
			if err != nil {
				return err
			}
			ss := eng.FindDangerousSentences(normalize.Clean(raw))
			if ss == nil {
				ss = []string{}
			}
			return writeJSON(cmd.OutOrStdout(), out, sentencesOutput{Document: args[0], Sentences: ss})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the report here instead of stdout")
	engineFlags(cmd)
	return cmd
}
