package app

import (
	"context"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"gengo-go/sdk/gengo"
)

// RunAccount fetches stats and balance concurrently and prints them merged.
func RunAccount(ctx context.Context, opts Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var stats, balance gengo.Account
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.api.Stats(gctx)
		stats = a
		return err
	})
	g.Go(func() error {
		a, err := s.api.Balance(gctx)
		balance = a
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	acct := mergeAccount(stats, balance)
	return s.out.Fields(acct, [][2]any{
		{"Credits", decimalText(acct.CreditsPresent, acct.Currency)},
		{"Spent", decimalText(acct.CreditsSpent, acct.Currency)},
		{"Customer since", timeText(acct.Since)},
	})
}

// mergeAccount prefers the balance endpoint for the current credits.
func mergeAccount(stats, balance gengo.Account) gengo.Account {
	out := stats
	if balance.CreditsPresent != nil {
		out.CreditsPresent = balance.CreditsPresent
	}
	if balance.Currency != "" {
		out.Currency = balance.Currency
	}
	if out.CreditsSpent == nil {
		out.CreditsSpent = balance.CreditsSpent
	}
	if out.Since == nil {
		out.Since = balance.Since
	}
	return out
}

func RunTranslators(ctx context.Context, opts Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	translators, err := s.api.PreferredTranslators(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(translators))
	for _, tr := range translators {
		pair, tier := pairText(tr.Pair)
		jobs := "-"
		if tr.JobCount != nil {
			jobs = strconv.Itoa(*tr.JobCount)
		}
		rows = append(rows, table.Row{intText(tr.ID), pair, tier, jobs})
	}
	return s.out.Render(translators, table.Row{"ID", "Pair", "Tier", "Jobs"}, rows)
}
