package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gengo-go/internal/app"
	"gengo-go/sdk/gengo"
)

var jobFlags struct {
	preMT bool

	rating        int
	forTranslator string
	forGengo      string
	public        bool

	comment  string
	reason   string
	captcha  string
	followUp string
}

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect and act on a single job",
}

// jobRunE parses the leading job id and hands it to run.
func jobRunE(run func(cmd *cobra.Command, id int, rest []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return run(cmd, id, args[1:])
	}
}

var jobGetCmd = &cobra.Command{
	Use:   "get <job_id>",
	Short: "Show a job with its source and translation",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		return app.RunJob(cmd.Context(), globalOptions(), id, jobFlags.preMT)
	}),
}

var jobApproveCmd = &cobra.Command{
	Use:   "approve <job_id>",
	Short: "Approve a reviewable job",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		fb := gengo.Feedback{ForTranslator: jobFlags.forTranslator, ForGengo: jobFlags.forGengo}
		if cmd.Flags().Changed("rating") {
			if jobFlags.rating < 1 || jobFlags.rating > 5 {
				return fmt.Errorf("--rating must be between 1 and 5")
			}
			fb.Rating = gengo.Int(jobFlags.rating)
		}
		fb.IsPublic = changedBool(cmd, "public", jobFlags.public)
		return app.RunJobAction(cmd.Context(), globalOptions(), id, gengo.Approve{Feedback: fb})
	}),
}

var jobReviseCmd = &cobra.Command{
	Use:   "revise <job_id>",
	Short: "Send a job back to the translator",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		if strings.TrimSpace(jobFlags.comment) == "" {
			return fmt.Errorf("--comment is required")
		}
		return app.RunJobAction(cmd.Context(), globalOptions(), id, gengo.Revise{Comment: jobFlags.comment})
	}),
}

var jobRejectCmd = &cobra.Command{
	Use:   "reject <job_id>",
	Short: "Reject a reviewable job",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		reason := gengo.RejectReason(strings.ToLower(jobFlags.reason))
		switch reason {
		case gengo.ReasonQuality, gengo.ReasonIncomplete, gengo.ReasonOther:
		default:
			return fmt.Errorf("--reason must be quality, incomplete or other")
		}
		followUp := gengo.FollowUp(strings.ToLower(jobFlags.followUp))
		switch followUp {
		case gengo.FollowUpRequeue, gengo.FollowUpCancel:
		default:
			return fmt.Errorf("--follow-up must be requeue or cancel")
		}
		if strings.TrimSpace(jobFlags.captcha) == "" {
			return fmt.Errorf("--captcha is required")
		}
		return app.RunJobAction(cmd.Context(), globalOptions(), id, gengo.Reject{
			Reason:   reason,
			Comment:  jobFlags.comment,
			Captcha:  jobFlags.captcha,
			FollowUp: followUp,
		})
	}),
}

var jobDeleteCmd = &cobra.Command{
	Use:   "delete <job_id> [job_id ...]",
	Short: "Cancel jobs nobody has started on",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return app.RunJobsDelete(cmd.Context(), globalOptions(), ids)
	},
}

var jobCommentsCmd = &cobra.Command{
	Use:   "comments <job_id>",
	Short: "Show the comment thread of a job",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		return app.RunJobComments(cmd.Context(), globalOptions(), id)
	}),
}

var jobCommentCmd = &cobra.Command{
	Use:   "comment <job_id> <text>",
	Short: "Post a comment to the translator",
	Args:  cobra.MinimumNArgs(2),
	RunE: jobRunE(func(cmd *cobra.Command, id int, rest []string) error {
		return app.RunJobComment(cmd.Context(), globalOptions(), id, strings.Join(rest, " "))
	}),
}

var jobRevisionsCmd = &cobra.Command{
	Use:   "revisions <job_id>",
	Short: "List the revisions of a job",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		return app.RunJobRevisions(cmd.Context(), globalOptions(), id)
	}),
}

var jobRevisionCmd = &cobra.Command{
	Use:   "revision <job_id> <revision_id>",
	Short: "Show one revision of a job",
	Args:  cobra.ExactArgs(2),
	RunE: jobRunE(func(cmd *cobra.Command, id int, rest []string) error {
		rev, err := parseID(rest[0])
		if err != nil {
			return err
		}
		return app.RunJobRevision(cmd.Context(), globalOptions(), id, rev)
	}),
}

var jobFeedbackCmd = &cobra.Command{
	Use:   "feedback <job_id>",
	Short: "Show the feedback left on an approved job",
	Args:  cobra.ExactArgs(1),
	RunE: jobRunE(func(cmd *cobra.Command, id int, _ []string) error {
		return app.RunJobFeedback(cmd.Context(), globalOptions(), id)
	}),
}

func init() {
	jobGetCmd.Flags().BoolVar(&jobFlags.preMT, "pre-mt", false, "show the machine translation while no human one exists")

	jobApproveCmd.Flags().IntVar(&jobFlags.rating, "rating", 0, "rating from 1 to 5")
	jobApproveCmd.Flags().StringVar(&jobFlags.forTranslator, "for-translator", "", "feedback for the translator")
	jobApproveCmd.Flags().StringVar(&jobFlags.forGengo, "for-gengo", "", "feedback for Gengo")
	jobApproveCmd.Flags().BoolVar(&jobFlags.public, "public", false, "allow the feedback to be shared")

	jobReviseCmd.Flags().StringVar(&jobFlags.comment, "comment", "", "what should change")

	jobRejectCmd.Flags().StringVar(&jobFlags.reason, "reason", "quality", "quality, incomplete or other")
	jobRejectCmd.Flags().StringVar(&jobFlags.comment, "comment", "", "why the job is rejected")
	jobRejectCmd.Flags().StringVar(&jobFlags.captcha, "captcha", "", "text of the job's captcha image")
	jobRejectCmd.Flags().StringVar(&jobFlags.followUp, "follow-up", "requeue", "requeue or cancel")

	jobCmd.AddCommand(jobGetCmd, jobApproveCmd, jobReviseCmd, jobRejectCmd, jobDeleteCmd,
		jobCommentsCmd, jobCommentCmd, jobRevisionsCmd, jobRevisionCmd, jobFeedbackCmd)
}
