package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/semaphore"

	"gengo-go/internal/quotecache"
	"gengo-go/sdk/gengo"
)

type OrderCreateOptions struct {
	FromQuote bool
	Text      string
	From      string
	To        []string
	Tier      string

	Slug        string
	Comment     string
	CallbackURL string
	CustomData  string
	Purpose     string
	Tone        string
	MaxChars    int

	AutoApprove  *bool
	Force        *bool
	UsePreferred *bool
	AsGroup      *bool
}

func (o OrderCreateOptions) apply(j *gengo.Job) {
	if o.Slug != "" {
		j.Slug = o.Slug
	}
	j.Comment = o.Comment
	j.CallbackURL = o.CallbackURL
	j.CustomData = o.CustomData
	j.Purpose = o.Purpose
	j.Tone = o.Tone
	if o.MaxChars > 0 {
		j.MaxChars = gengo.Int(o.MaxChars)
	}
	j.AutoApprove = o.AutoApprove
	j.Force = o.Force
	j.UsePreferred = o.UsePreferred
	j.AsGroup = o.AsGroup
}

func (s *session) jobsFromQuote() ([]gengo.Job, error) {
	st, err := quotecache.LoadState(s.cfg.Quote.CacheDir, s.keys.PublicKey)
	if err != nil {
		return nil, err
	}
	if len(st.Jobs) == 0 {
		return nil, fmt.Errorf("no quote found, run gengo quote first")
	}
	if st.Sandbox != s.sandbox {
		return nil, fmt.Errorf("the last quote was taken against the %s endpoint", endpointName(st.Sandbox))
	}
	jobs := make([]gengo.Job, 0, len(st.Jobs))
	for _, e := range st.Jobs {
		j, err := e.Job()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func endpointName(sandbox bool) string {
	if sandbox {
		return "sandbox"
	}
	return "production"
}

func RunOrderCreate(ctx context.Context, opts Options, o OrderCreateOptions) error {
	text := strings.TrimSpace(o.Text)
	if o.FromQuote == (text != "") {
		return fmt.Errorf("pass either --from-quote or --text")
	}
	var tier gengo.Tier
	var targets []string
	if !o.FromQuote {
		var err error
		if tier, err = parseTier(o.Tier); err != nil {
			return err
		}
		if targets = normalizeCodes(o.To); len(targets) == 0 {
			return fmt.Errorf("at least one target language is required")
		}
	}

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var jobs []gengo.Job
	if o.FromQuote {
		if jobs, err = s.jobsFromQuote(); err != nil {
			return err
		}
	} else {
		from, err := sourceLanguage(s.log, o.From, text)
		if err != nil {
			return err
		}
		for _, tgt := range targets {
			jobs = append(jobs, gengo.NewTextJob(gengo.NewLanguagePair(from, tgt, tier), text))
		}
	}
	for i := range jobs {
		o.apply(&jobs[i])
	}

	order, err := s.api.CreateJobs(ctx, jobs)
	if err != nil {
		return friendlyError(err)
	}
	if order == nil {
		s.log.Info("all jobs duplicate existing ones, no order was created")
		return nil
	}
	if o.FromQuote {
		if err := quotecache.Clear(s.cfg.Quote.CacheDir, s.keys.PublicKey); err != nil {
			s.log.Info(fmt.Sprintf("could not clear the quote cache: %v", err))
		}
	}
	s.log.Event("order_created", map[string]any{"order_id": intText(order.ID), "jobs": len(jobs)})
	return s.out.Fields(order, [][2]any{
		{"Order", intText(order.ID)},
		{"Jobs", intText(order.JobCount)},
		{"Credits", moneyText(order.Credit)},
	})
}

func RunOrderGet(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	order, err := s.api.Order(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %d not found", id)
	}
	if opts.JSON {
		return s.out.PrintJSON(order)
	}
	if err := s.out.Fields(nil, [][2]any{
		{"Order", intText(order.ID)},
		{"Jobs", intText(order.JobCount)},
		{"Units", intText(order.Units)},
		{"Credits", moneyText(order.Credit)},
		{"Group", boolText(&order.AsGroup)},
	}); err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(order.Jobs))
	for _, j := range order.Jobs {
		rows = append(rows, table.Row{intText(j.ID), string(j.Status)})
	}
	s.out.Table(table.Row{"Job", "Status"}, rows)
	return nil
}

func RunOrderDelete(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.api.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("order %d cancelled", id))
	return nil
}

type OrderWatchOptions struct {
	// Until is "reviewable" or "approved".
	Until string
	// CancelOnInterrupt cancels jobs nobody has picked up yet when the watch
	// is interrupted.
	CancelOnInterrupt bool
}

var settledStatuses = map[string]map[gengo.JobStatus]bool{
	"reviewable": {
		gengo.StatusReviewable: true,
		gengo.StatusApproved:   true,
		gengo.StatusRejected:   true,
		gengo.StatusCanceled:   true,
	},
	"approved": {
		gengo.StatusApproved: true,
		gengo.StatusRejected: true,
		gengo.StatusCanceled: true,
	},
}

func statusSummary(jobs []gengo.Job) string {
	counts := map[string]int{}
	for _, j := range jobs {
		st := string(j.Status)
		if st == "" {
			st = "unknown"
		}
		counts[st]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

func orderSettled(jobs []gengo.Job, settled map[gengo.JobStatus]bool) bool {
	if len(jobs) == 0 {
		return false
	}
	for _, j := range jobs {
		if !settled[j.Status] {
			return false
		}
	}
	return true
}

// RunOrderWatch polls the order until every job reaches the requested state.
func RunOrderWatch(ctx context.Context, opts Options, id int, w OrderWatchOptions) error {
	until := strings.ToLower(strings.TrimSpace(w.Until))
	if until == "" {
		until = "reviewable"
	}
	settled, ok := settledStatuses[until]
	if !ok {
		return fmt.Errorf("unknown --until %q, expected reviewable or approved", w.Until)
	}

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	interval := time.Duration(s.cfg.Run.PollIntervalMs) * time.Millisecond
	start := time.Now()
	deadline := start.Add(time.Duration(s.cfg.Run.PollTimeoutSecond) * time.Second)
	var last *gengo.Order
	lastSummary := ""
	for {
		order, err := s.api.Order(ctx, id)
		if err != nil {
			if isContextCanceledErr(err) && ctx.Err() != nil {
				return s.watchInterrupted(ctx, last, w.CancelOnInterrupt)
			}
			return err
		}
		if order == nil {
			return fmt.Errorf("order %d not found", id)
		}
		last = order
		summary := statusSummary(order.Jobs)
		if summary != lastSummary {
			lastSummary = summary
			s.log.Info(fmt.Sprintf("order %d: %s", id, summary))
		}
		s.log.Event("order_poll", map[string]any{"order_id": id, "summary": summary})
		if orderSettled(order.Jobs, settled) {
			s.log.Info(fmt.Sprintf("order %d is %s, took %s", id, until, humanDurationShort(time.Since(start))))
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("order %d: polling timed out after %s", id, humanDurationShort(time.Since(start)))
		}
		select {
		case <-ctx.Done():
			return s.watchInterrupted(ctx, last, w.CancelOnInterrupt)
		case <-time.After(interval):
		}
	}
}

func (s *session) watchInterrupted(ctx context.Context, order *gengo.Order, cancelJobs bool) error {
	if !errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if cancelJobs && order != nil {
		var ids []int
		for _, j := range order.Jobs {
			if j.Status == gengo.StatusAvailable && j.ID != nil {
				ids = append(ids, *j.ID)
			}
		}
		if len(ids) > 0 {
			s.log.Info(fmt.Sprintf("interrupted, cancelling %d available job(s)", len(ids)))
			cancelCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			okCount, failCount := s.deleteJobs(cancelCtx, ids)
			s.log.Info(fmt.Sprintf("cancel finished: %d ok, %d failed", okCount, failCount))
		}
	}
	return context.Canceled
}

// deleteJobs cancels jobs concurrently, bounded by the configured
// concurrency, and reports how many calls succeeded and failed.
func (s *session) deleteJobs(ctx context.Context, ids []int) (int64, int64) {
	var okCount atomic.Int64
	var failCount atomic.Int64
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(max(s.cfg.Run.Concurrency, 1)))
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				failCount.Add(1)
				return
			}
			defer sem.Release(1)
			if err := s.api.DeleteJob(ctx, id); err != nil {
				failCount.Add(1)
				s.log.Info(fmt.Sprintf("job %d: cancel failed: %v", id, err))
				return
			}
			okCount.Add(1)
			s.log.Info(fmt.Sprintf("job %d cancelled", id))
		}()
	}
	wg.Wait()
	return okCount.Load(), failCount.Load()
}
