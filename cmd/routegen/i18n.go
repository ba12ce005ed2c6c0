package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/i18n"
)

func i18nCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation catalog tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report keys missing from a locale",
		Long: `Compare every configured locale against the default locale and list
the keys it does not define.

Locales are read from <i18n.dir>/<locale>/translation.json (or .yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runI18nCheck(flags)
		},
	})

	var locales []string
	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the translation of a key in each locale",
		Long: `Resolve a dot-separated key in every configured locale. Locales
that do not define the key print the key itself and log a warning.

Examples:
  routegen i18n get auth.login.email
  routegen i18n get common.error --locale fr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runI18nGet(cmd, flags, args[0], locales)
		},
	}
	get.Flags().StringSliceVarP(&locales, "locale", "l", nil, "Only these locales (default: all configured)")
	cmd.AddCommand(get)

	return cmd
}

func runI18nGet(cmd *cobra.Command, flags *globalFlags, key string, locales []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.verbose, os.Stderr)

	if len(locales) == 0 {
		locales = cfg.I18n.Locales
	}
	out := cmd.OutOrStdout()
	for _, locale := range locales {
		catalog, err := i18n.Load(cfg.LocalesPath(), locale, i18n.Options{Logger: logger})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", locale, catalog.T(key))
	}
	return nil
}

func runI18nCheck(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.verbose, os.Stderr)

	missing, err := i18n.Check(cfg.LocalesPath(), cfg.I18n.Default, cfg.I18n.Locales, i18n.Options{
		Production: true,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		success("All %d locales are complete", len(cfg.I18n.Locales))
		return nil
	}

	locales := make([]string, 0, len(missing))
	total := 0
	for locale, keys := range missing {
		locales = append(locales, locale)
		total += len(keys)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		warn("%s: %d missing", locale, len(missing[locale]))
		for _, key := range missing[locale] {
			info("  %s", key)
		}
	}
	return errors.New("R141").
		WithDetail(fmt.Sprintf("%d keys of %q are missing from other locales", total, cfg.I18n.Default))
}
