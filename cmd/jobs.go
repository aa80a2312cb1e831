package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gengo-go/internal/app"
)

var jobsFlags struct {
	status string
	after  string
	count  int
}

// parseAfter accepts an RFC 3339 time, a date, or a duration back from now.
func parseAfter(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return now.Add(-d), nil
	}
	return time.Time{}, fmt.Errorf("invalid --after %q, use 2006-01-02, RFC 3339 or a duration like 48h", s)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs [job_id ...]",
	Short: "List recent jobs, or the given jobs",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		after, err := parseAfter(jobsFlags.after, time.Now())
		if err != nil {
			return err
		}
		return app.RunJobs(cmd.Context(), globalOptions(), app.JobsOptions{
			Status: jobsFlags.status,
			After:  after,
			Count:  jobsFlags.count,
			IDs:    ids,
		})
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsFlags.status, "status", "", "only jobs in this status")
	jobsCmd.Flags().StringVar(&jobsFlags.after, "after", "", "only jobs created after this time")
	jobsCmd.Flags().IntVar(&jobsFlags.count, "count", 0, "maximum number of jobs")
}
