package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var quoteOpts app.QuoteOptions

var quoteCmd = &cobra.Command{
	Use:   "quote [file_or_dir ...]",
	Short: "Price text or files before ordering",
	Long: "Quote --text, or the given files and directories, for every --to language.\n" +
		"The result is kept so that `gengo order create --from-quote` can order it.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := quoteOpts
		opts.Files = args
		return app.RunQuote(cmd.Context(), globalOptions(), opts)
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quoteOpts.From, "from", "", "source language (detected from text when omitted)")
	quoteCmd.Flags().StringSliceVar(&quoteOpts.To, "to", nil, "target languages, comma separated")
	quoteCmd.Flags().StringVar(&quoteOpts.Tier, "tier", "standard", "standard, pro or ultra")
	quoteCmd.Flags().StringVar(&quoteOpts.Text, "text", "", "text to quote")
	quoteCmd.Flags().BoolVar(&quoteOpts.Save, "save", false, "also write the quote to a JSON file")
	quoteCmd.Flags().StringVarP(&quoteOpts.OutDir, "out", "o", ".", "directory for --save")
}
