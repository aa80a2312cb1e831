package cmd

import (
	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var (
	orderCreateOpts app.OrderCreateOptions
	orderWatchOpts  app.OrderWatchOptions
)

var orderFlags struct {
	autoApprove  bool
	force        bool
	usePreferred bool
	asGroup      bool
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Create, inspect and cancel orders",
}

// changedBool returns v when the flag was given on the command line.
func changedBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Order the last quote, or --text directly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := orderCreateOpts
		opts.AutoApprove = changedBool(cmd, "auto-approve", orderFlags.autoApprove)
		opts.Force = changedBool(cmd, "force", orderFlags.force)
		opts.UsePreferred = changedBool(cmd, "use-preferred", orderFlags.usePreferred)
		opts.AsGroup = changedBool(cmd, "as-group", orderFlags.asGroup)
		return app.RunOrderCreate(cmd.Context(), globalOptions(), opts)
	},
}

var orderGetCmd = &cobra.Command{
	Use:   "get <order_id>",
	Short: "Show an order and the status of its jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.RunOrderGet(cmd.Context(), globalOptions(), id)
	},
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete <order_id>",
	Short: "Cancel every job of an order that has not started",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.RunOrderDelete(cmd.Context(), globalOptions(), id)
	},
}

var orderWatchCmd = &cobra.Command{
	Use:   "watch <order_id>",
	Short: "Poll an order until its jobs are done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.RunOrderWatch(cmd.Context(), globalOptions(), id, orderWatchOpts)
	},
}

func init() {
	f := orderCreateCmd.Flags()
	f.BoolVar(&orderCreateOpts.FromQuote, "from-quote", false, "order the jobs of the last quote")
	f.StringVar(&orderCreateOpts.Text, "text", "", "text to translate")
	f.StringVar(&orderCreateOpts.From, "from", "", "source language (detected when omitted)")
	f.StringSliceVar(&orderCreateOpts.To, "to", nil, "target languages, comma separated")
	f.StringVar(&orderCreateOpts.Tier, "tier", "standard", "standard, pro or ultra")
	f.StringVar(&orderCreateOpts.Slug, "slug", "", "job title")
	f.StringVar(&orderCreateOpts.Comment, "comment", "", "instructions for the translator")
	f.StringVar(&orderCreateOpts.CallbackURL, "callback-url", "", "URL notified on status changes")
	f.StringVar(&orderCreateOpts.CustomData, "custom-data", "", "opaque data stored with each job")
	f.StringVar(&orderCreateOpts.Purpose, "purpose", "", "purpose of the translation")
	f.StringVar(&orderCreateOpts.Tone, "tone", "", "tone of the translation")
	f.IntVar(&orderCreateOpts.MaxChars, "max-chars", 0, "maximum length of the translation")
	f.BoolVar(&orderFlags.autoApprove, "auto-approve", false, "approve jobs automatically")
	f.BoolVar(&orderFlags.force, "force", false, "order even if an identical job exists")
	f.BoolVar(&orderFlags.usePreferred, "use-preferred", false, "only use preferred translators")
	f.BoolVar(&orderFlags.asGroup, "as-group", false, "have one translator do all jobs")

	orderWatchCmd.Flags().StringVar(&orderWatchOpts.Until, "until", "reviewable", "reviewable or approved")
	orderWatchCmd.Flags().BoolVar(&orderWatchOpts.CancelOnInterrupt, "cancel-on-interrupt", false, "cancel jobs still available when interrupted")

	orderCmd.AddCommand(orderCreateCmd, orderGetCmd, orderDeleteCmd, orderWatchCmd)
}
