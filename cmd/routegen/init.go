package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/templates"
)

func initCmd() *cobra.Command {
	var noScaffold bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a routegen.json with default settings",
		Long: `Write a routegen.json with the default layout and create the
root route and a home page if they are missing.

An existing config file is never overwritten.

Examples:
  routegen init
  routegen init web --no-scaffold`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, noScaffold)
		},
	}

	cmd.Flags().BoolVar(&noScaffold, "no-scaffold", false, "Only write the config file")

	return cmd
}

func runInit(dir string, noScaffold bool) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.FromError(err, "R110")
	}
	if config.Exists(abs) {
		return errors.New("R130").
			WithDetail("A routegen config already exists in " + abs).
			WithSuggestion("Edit the existing file instead")
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return errors.New("R110").Wrap(err)
	}

	cfg := config.New(abs)
	path := filepath.Join(abs, config.FileNames[0])
	if err := cfg.SaveTo(path); err != nil {
		return errors.FromError(err, "R110")
	}
	success("Created %s", path)

	if noScaffold {
		return nil
	}
	created, err := templates.Starter().Create(abs, templates.ScaffoldData{
		Routes: filepath.ToSlash(cfg.Routes),
		Home:   cfg.Home,
	})
	if err != nil {
		return errors.FromError(err, "R110")
	}
	for _, rel := range created {
		info("created %s", rel)
	}
	info("Run 'routegen' to generate the router")
	return nil
}
