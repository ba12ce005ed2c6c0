package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/routes"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print resolved URLs and report stale overrides",
		Long: `Resolve every route file against the override table without
writing anything.

Each category's URLs are printed with its base path applied. Table
entries whose route file no longer exists are reported as stale, and
the command exits with an error if any are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(flags)
		},
	}
}

func runCheck(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.verbose, os.Stderr)

	report, err := routes.NewRebuilder(cfg, logger).Check()
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		warn("%s", w.FormatCompact())
	}

	for _, cat := range report.Categories {
		fmt.Printf("\n  %s (%s)\n", cat.Name, cat.BasePath)
		if len(cat.Routes) == 0 {
			info("  (no routes)")
			continue
		}
		for _, r := range cat.Routes {
			marker := ""
			if r.Overridden {
				marker = "  [override]"
			}
			info("  %-28s %s%s", r.URL, r.Key, marker)
		}
	}
	fmt.Println()

	if len(report.Stale) == 0 {
		success("Override table is in sync")
		return nil
	}
	for _, key := range report.Stale {
		errorMsg("stale entry %q", key)
	}
	return errors.New("R131").
		WithDetail(fmt.Sprintf("%d entries in %s have no route file", len(report.Stale), cfg.OverridesPath())).
		WithSuggestion("Run 'routegen gen' to drop them")
}
