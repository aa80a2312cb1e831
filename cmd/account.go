package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show credits, spending and account age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunAccount(cmd.Context(), globalOptions())
	},
}

var translatorsCmd = &cobra.Command{
	Use:   "translators",
	Short: "List preferred translators per language pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunTranslators(cmd.Context(), globalOptions())
	},
}
