package gengo

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CreateJobs submits jobs as one order. A nil order with a nil error means
// the service accepted the batch but had nothing to create, which it reports
// when every job duplicates an existing one.
func (c *Client) CreateJobs(ctx context.Context, jobs []Job) (*Order, error) {
	raw, err := c.post(ctx, "translate/jobs", createBody(jobs))
	if err != nil {
		return nil, err
	}
	return mapCreatedOrder(raw), nil
}

// createBody only emits the optional fields a job actually sets.
func createBody(jobs []Job) map[string]any {
	entries := make(map[string]any, len(jobs))
	for i, j := range jobs {
		if !sendable(j) {
			continue
		}
		entry := map[string]any{
			"type":   string(j.Type),
			"lc_src": j.Pair.Source.Code,
			"lc_tgt": j.Pair.Target.Code,
			"tier":   string(j.Pair.Tier),
		}
		setString(entry, "slug", j.Slug)
		setString(entry, "body_src", j.SourceText)
		setString(entry, "identifier", j.Identifier)
		setString(entry, "comment", j.Comment)
		setString(entry, "custom_data", j.CustomData)
		setString(entry, "position", j.Position)
		setString(entry, "purpose", j.Purpose)
		setString(entry, "tone", j.Tone)
		setString(entry, "callback_url", j.CallbackURL)
		setFlag(entry, "auto_approve", j.AutoApprove)
		setFlag(entry, "force", j.Force)
		setFlag(entry, "use_preferred", j.UsePreferred)
		setFlag(entry, "as_group", j.AsGroup)
		if j.MaxChars != nil {
			entry["max_chars"] = *j.MaxChars
		}
		entries[jobKey(i)] = entry
	}
	return map[string]any{"jobs": entries}
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func setFlag(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = boolInt(*v)
	}
}

// JobsFilter narrows Jobs. Zero fields are not sent.
type JobsFilter struct {
	Status JobStatus
	After  time.Time
	Count  int
}

func (f JobsFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if !f.After.IsZero() {
		q.Set("timestamp_after", strconv.FormatInt(Timestamp(f.After), 10))
	}
	if f.Count > 0 {
		q.Set("count", strconv.Itoa(f.Count))
	}
	return q
}

// Jobs lists recent jobs. Listed jobs carry ids and status but no texts.
func (c *Client) Jobs(ctx context.Context, filter JobsFilter) ([]Job, error) {
	raw, err := c.get(ctx, "translate/jobs", filter.query())
	if err != nil {
		return nil, err
	}
	return mapJobList(raw), nil
}

func (c *Client) JobsByID(ctx context.Context, ids []int) ([]Job, error) {
	if len(ids) == 0 {
		return nil, errors.New("gengo: no job ids")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	raw, err := c.get(ctx, "translate/jobs/"+strings.Join(parts, ","), nil)
	if err != nil {
		return nil, err
	}
	return mapJobsByID(raw), nil
}

// Job fetches one job. preMT asks for the machine translation when no human
// translation exists yet.
func (c *Client) Job(ctx context.Context, id int, preMT bool) (*Job, error) {
	q := url.Values{}
	q.Set("pre_mt", strconv.Itoa(boolInt(preMT)))
	raw, err := c.get(ctx, jobPath(id), q)
	if err != nil {
		return nil, err
	}
	return mapSingleJob(raw), nil
}

func (c *Client) UpdateJob(ctx context.Context, id int, action JobAction) error {
	body, err := actionBody(action)
	if err != nil {
		return err
	}
	req, err := c.requests().Put(jobPath(id), body)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

func (c *Client) DeleteJob(ctx context.Context, id int) error {
	_, err := c.do(ctx, c.requests().Delete(jobPath(id), nil))
	return err
}

func (c *Client) Revisions(ctx context.Context, jobID int) ([]Revision, error) {
	raw, err := c.get(ctx, jobPath(jobID)+"/revisions", nil)
	if err != nil {
		return nil, err
	}
	return mapRevisions(raw), nil
}

func (c *Client) Revision(ctx context.Context, jobID, revisionID int) (*Revision, error) {
	raw, err := c.get(ctx, jobPath(jobID)+"/revision/"+strconv.Itoa(revisionID), nil)
	if err != nil {
		return nil, err
	}
	return mapRevision(raw), nil
}

func (c *Client) Feedback(ctx context.Context, jobID int) (*Feedback, error) {
	raw, err := c.get(ctx, jobPath(jobID)+"/feedback", nil)
	if err != nil {
		return nil, err
	}
	return mapFeedback(raw), nil
}

func (c *Client) Comments(ctx context.Context, jobID int) ([]Comment, error) {
	raw, err := c.get(ctx, jobPath(jobID)+"/comments", nil)
	if err != nil {
		return nil, err
	}
	return mapComments(raw), nil
}

func (c *Client) PostComment(ctx context.Context, jobID int, body string) error {
	_, err := c.post(ctx, jobPath(jobID)+"/comment", map[string]any{"body": body})
	return err
}

func jobPath(id int) string {
	return "translate/job/" + strconv.Itoa(id)
}
