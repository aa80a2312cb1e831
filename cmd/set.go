package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change local settings",
}

var setKeyCmd = &cobra.Command{
	Use:   "key <public_key> <private_key>",
	Short: "Store the API key pair in ~/.gengo/.env",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunSetKey(cmd.Context(), args[0], args[1])
	},
}

func init() {
	setCmd.AddCommand(setKeyCmd)
}
