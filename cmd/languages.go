package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var pairsSource string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunLanguages(cmd.Context(), globalOptions())
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List language pairs with unit prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunPairs(cmd.Context(), globalOptions(), pairsSource)
	},
}

func init() {
	pairsCmd.Flags().StringVar(&pairsSource, "from", "", "only pairs with this source language")
}
