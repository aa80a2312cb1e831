package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var (
	verbose     bool
	logFile     string
	cfgPath     string
	sandbox     bool
	jsonOut     bool
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "gengo",
	Short: "Order and manage human translations from the command line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help()
	},
}

func globalOptions() app.Options {
	return app.Options{
		ConfigPath: cfgPath,
		Verbose:    verbose,
		LogFile:    logFile,
		Sandbox:    sandbox,
		JSON:       jsonOut,
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print NDJSON events instead of plain lines")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write the log to this file")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.gengo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&sandbox, "sandbox", false, "use the sandbox endpoint")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version information")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(translatorsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(callbackCmd)
}
