package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"gengo-go/sdk/gengo"
)

type JobsOptions struct {
	Status string
	After  time.Time
	Count  int
	IDs    []int
}

func jobRows(jobs []gengo.Job) []table.Row {
	rows := make([]table.Row, 0, len(jobs))
	for _, j := range jobs {
		pair, tier := pairText(j.Pair)
		rows = append(rows, table.Row{intText(j.ID), string(j.Status), pair, tier, j.Slug, moneyText(j.Credit), etaText(j.ETA), timeText(j.CreatedAt)})
	}
	return rows
}

var jobHeader = table.Row{"ID", "Status", "Pair", "Tier", "Slug", "Credits", "ETA", "Created"}

func RunJobs(ctx context.Context, opts Options, o JobsOptions) error {
	var filter gengo.JobsFilter
	if st := strings.ToLower(strings.TrimSpace(o.Status)); st != "" {
		status, ok := gengo.ParseJobStatus(st)
		if !ok {
			return fmt.Errorf("unknown job status %q", o.Status)
		}
		filter.Status = status
	}
	if o.Count < 0 {
		return fmt.Errorf("--count must not be negative")
	}
	filter.After = o.After
	filter.Count = o.Count

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var jobs []gengo.Job
	if len(o.IDs) > 0 {
		jobs, err = s.api.JobsByID(ctx, o.IDs)
	} else {
		jobs, err = s.api.Jobs(ctx, filter)
	}
	if err != nil {
		return err
	}
	return s.out.Render(jobs, jobHeader, jobRows(jobs))
}

func RunJob(ctx context.Context, opts Options, id int, preMT bool) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	j, err := s.api.Job(ctx, id, preMT)
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("job %d not found", id)
	}
	pair, tier := pairText(j.Pair)
	return s.out.Fields(j, [][2]any{
		{"Job", intText(j.ID)},
		{"Order", intText(j.OrderID)},
		{"Status", string(j.Status)},
		{"Pair", pair},
		{"Tier", tier},
		{"Slug", j.Slug},
		{"Units", intText(j.UnitCount)},
		{"Credits", moneyText(j.Credit)},
		{"ETA", etaText(j.ETA)},
		{"Created", timeText(j.CreatedAt)},
		{"Source", j.SourceText},
		{"Translation", j.TargetText},
	})
}

func actionVerb(a gengo.JobAction) string {
	switch a.(type) {
	case gengo.Approve:
		return "approved"
	case gengo.Reject:
		return "rejected"
	case gengo.Revise:
		return "sent back for revision"
	}
	return "updated"
}

func RunJobAction(ctx context.Context, opts Options, id int, action gengo.JobAction) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.api.UpdateJob(ctx, id, action); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("job %d %s", id, actionVerb(action)))
	return nil
}

// RunJobsDelete cancels the given jobs concurrently. It fails when any of
// them could not be cancelled.
func RunJobsDelete(ctx context.Context, opts Options, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("no job ids given")
	}
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	okCount, failCount := s.deleteJobs(ctx, ids)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(ids) > 1 {
		s.log.Info(fmt.Sprintf("cancel finished: %d ok, %d failed", okCount, failCount))
	}
	if failCount > 0 {
		return fmt.Errorf("%d job(s) could not be cancelled", failCount)
	}
	return nil
}

func RunJobComments(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	comments, err := s.api.Comments(ctx, id)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(comments))
	for _, c := range comments {
		author := string(c.Author)
		if author == "" {
			author = "-"
		}
		rows = append(rows, table.Row{timeText(c.CreatedAt), author, c.Body})
	}
	return s.out.Render(comments, table.Row{"Time", "Author", "Comment"}, rows)
}

func RunJobComment(ctx context.Context, opts Options, id int, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("comment must not be empty")
	}
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.api.PostComment(ctx, id, body); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("comment posted on job %d", id))
	return nil
}

func RunJobRevisions(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	revs, err := s.api.Revisions(ctx, id)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(revs))
	for _, r := range revs {
		rows = append(rows, table.Row{intText(r.ID), timeText(r.CreatedAt)})
	}
	return s.out.Render(revs, table.Row{"Revision", "Created"}, rows)
}

func RunJobRevision(ctx context.Context, opts Options, id, revisionID int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	rev, err := s.api.Revision(ctx, id, revisionID)
	if err != nil {
		return err
	}
	if rev == nil {
		return fmt.Errorf("revision %d of job %d not found", revisionID, id)
	}
	return s.out.Fields(rev, [][2]any{
		{"Revision", intText(rev.ID)},
		{"Created", timeText(rev.CreatedAt)},
		{"Translation", rev.Body},
	})
}

func RunJobFeedback(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	fb, err := s.api.Feedback(ctx, id)
	if err != nil {
		return err
	}
	if fb == nil {
		s.log.Info(fmt.Sprintf("job %d has no feedback", id))
		return nil
	}
	return s.out.Fields(fb, [][2]any{
		{"Rating", intText(fb.Rating)},
		{"For translator", fb.ForTranslator},
		{"For Gengo", fb.ForGengo},
		{"Public", boolText(fb.IsPublic)},
	})
}
