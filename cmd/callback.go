package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var callbackOpts app.CallbackOptions

var callbackCmd = &cobra.Command{
	Use:   "callback",
	Short: "Receive job callbacks",
}

var callbackServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP endpoint for job status and comment callbacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunCallbackServe(cmd.Context(), globalOptions(), callbackOpts)
	},
}

func init() {
	callbackServeCmd.Flags().StringVar(&callbackOpts.Addr, "addr", "", "listen address (default from config)")
	callbackServeCmd.Flags().StringVar(&callbackOpts.Path, "path", "", "callback path (default from config)")
	callbackCmd.AddCommand(callbackServeCmd)
}
