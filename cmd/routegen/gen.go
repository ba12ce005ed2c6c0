package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/routes"
)

func genCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Rebuild all generated route files once",
		Long: `Reconcile the override table with the route files on disk, then
regenerate every category index and the router file.

Files are only written when their content changes.

Examples:
  routegen gen
  routegen gen --config=web/routegen.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, flags)
		},
	}
}

func runGen(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.verbose, os.Stderr)

	report, err := routes.NewRebuilder(cfg, logger).Rebuild(cmd.Context())
	if err != nil {
		return err
	}

	if report.Overrides.Created {
		success("Created %s", cfg.OverridesPath())
	} else {
		for _, key := range report.Overrides.Added {
			info("+ %s", key)
		}
	}
	for _, key := range report.Overrides.Removed {
		info("- %s", key)
	}
	for _, w := range report.Warnings {
		warn("%s", w)
	}
	for _, path := range report.Written {
		info("wrote %s", path)
	}
	success("Generated %d routes in %s", report.RouteCount(), report.Duration.Round(time.Microsecond))
	return nil
}
