package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Browse glossaries",
}

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunGlossaries(cmd.Context(), globalOptions())
	},
}

var glossaryGetCmd = &cobra.Command{
	Use:   "get <glossary_id>",
	Short: "Show one glossary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.RunGlossary(cmd.Context(), globalOptions(), id)
	},
}

func init() {
	glossaryCmd.AddCommand(glossaryListCmd, glossaryGetCmd)
}
