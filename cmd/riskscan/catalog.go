package main

import (
	"riskscan/internal/core/catalog"
	"riskscan/internal/core/matcher"
	perr "riskscan/internal/platform/errors"

	"github.com/spf13/cobra"
)

// catalogEntry summarizes one compiled event type
type catalogEntry struct {
	EventType   string `json:"event_type"`
	EventNature string `json:"event_nature,omitempty"`
	TStarDays   *int   `json:"T_star_days,omitempty"`
	Keywords    int    `json:"keywords"`
	Explicit    int    `json:"explicit_patterns"`
	Matchers    int    `json:"matchers"`
}

// droppedEntry is an explicit pattern that did not compile
type droppedEntry struct {
	EventType string `json:"event_type"`
	Pattern   string `json:"pattern"`
	Error     string `json:"error"`
}

// catalogSummary is the list/validate output
type catalogSummary struct {
	Source     string         `json:"source"`
	EventTypes int            `json:"event_types"`
	Compiled   int            `json:"compiled"`
	Entries    []catalogEntry `json:"entries"`
	Dropped    []droppedEntry `json:"dropped,omitempty"`
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and pack event catalogs",
	}
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogValidateCmd())
	cmd.AddCommand(catalogPackCmd())
	return cmd
}

func summarize(path string) (catalogSummary, error) {
	c, err := catalog.Load(path)
	if err != nil {
		return catalogSummary{}, err
	}
	t := matcher.Compile(c)

	s := catalogSummary{Source: path, EventTypes: c.Len(), Compiled: t.Len()}
	if s.Source == "" {
		s.Source = "embedded"
	}
	for _, d := range c.Definitions() {
		e := catalogEntry{
			EventType:   d.ID,
			EventNature: d.EventNature,
			TStarDays:   d.TStarDays,
			Keywords:    len(d.Keywords),
			Explicit:    len(d.RegexPatterns),
		}
		if ent, ok := t.Get(d.ID); ok {
			e.Matchers = len(ent.Matchers)
		}
		s.Entries = append(s.Entries, e)
	}
	for _, d := range t.Dropped {
		s.Dropped = append(s.Dropped, droppedEntry{EventType: d.EventType, Pattern: d.Pattern, Error: d.Err.Error()})
	}
	return s, nil
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List event types with their matcher counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			s, err := summarize(path)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), "", s)
		},
	}
	cmd.Flags().String("catalog", "", "Event catalog (.json/.yaml); embedded default when empty")
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and compile a catalog, failing on invalid records",
		Long: `Load and compile a catalog. Invalid records always fail; explicit
patterns that do not compile are reported and fail only with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			strict, _ := cmd.Flags().GetBool("strict")
			s, err := summarize(path)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), "", s); err != nil {
				return err
			}
			if strict && len(s.Dropped) > 0 {
				d := s.Dropped[0]
				return perr.WithField(perr.ConfigInvalidf("%d explicit pattern(s) failed to compile, first %s: %s", len(s.Dropped), d.EventType, d.Error), d.EventType)
			}
			return nil
		},
	}
	cmd.Flags().String("catalog", "", "Event catalog (.json/.yaml); embedded default when empty")
	cmd.Flags().Bool("strict", false, "Fail when any explicit pattern is dropped")
	return cmd
}

func catalogPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack DIR",
		Short: "Merge catalog fragments into one catalog document",
		Long: `Merge every .json/.yaml/.yml fragment below DIR (schema directories are
skipped) into one catalog. An event type defined twice is an error.

Example:
  riskscan catalog pack ./catalog.d --out events.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			c, err := catalog.MergeDir(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out, c)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the packed catalog here instead of stdout")
	return cmd
}
