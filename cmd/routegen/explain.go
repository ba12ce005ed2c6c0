package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe routegen error codes",
		Long: `Print the category, message and explanation of an error code.
Without a code, list every registered code.

Examples:
  routegen explain
  routegen explain R103`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listCodes(cmd.OutOrStdout())
				return nil
			}
			return explainCode(cmd.OutOrStdout(), args[0])
		},
	}
}

func listCodes(w io.Writer) {
	for _, code := range errors.GetAllCodes() {
		tmpl, _ := errors.GetTemplate(code)
		fmt.Fprintf(w, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
	}
}

func explainCode(w io.Writer, code string) error {
	code = strings.ToUpper(code)
	tmpl, ok := errors.GetTemplate(code)
	if !ok {
		return errors.New("R132").
			WithDetail(fmt.Sprintf("%q is not a routegen error code", code)).
			WithSuggestion("Run 'routegen explain' to list every code")
	}
	fmt.Fprintf(w, "%s: %s\n", code, tmpl.Message)
	fmt.Fprintf(w, "Category: %s\n", tmpl.Category)
	if tmpl.Detail != "" {
		fmt.Fprintf(w, "\n%s\n", tmpl.Detail)
	}
	return nil
}
