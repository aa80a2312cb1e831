package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"gengo-go/internal/input"
	"gengo-go/internal/langdetect"
	"gengo-go/internal/output"
	"gengo-go/internal/quotecache"
	"gengo-go/sdk/gengo"
)

func RunLanguages(ctx context.Context, opts Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	langs, err := s.api.Languages(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, table.Row{l.Code, l.Name, l.LocalizedName, string(l.UnitType)})
	}
	return s.out.Render(langs, table.Row{"Code", "Name", "Localized", "Unit"}, rows)
}

func RunPairs(ctx context.Context, opts Options, source string) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	pairs, err := s.api.LanguagePairs(ctx, strings.ToLower(strings.TrimSpace(source)))
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, table.Row{p.Source.Code, p.Target.Code, string(p.Tier), moneyText(p.Price)})
	}
	return s.out.Render(pairs, table.Row{"Source", "Target", "Tier", "Unit price"}, rows)
}

type QuoteOptions struct {
	From   string
	To     []string
	Tier   string
	Text   string
	Files  []string
	Save   bool
	OutDir string
}

type sourceFile struct {
	path string
	file gengo.File
}

// readSources loads the files concurrently, keeping their order.
func readSources(ctx context.Context, srcs []input.SourceFile, limit int) ([]sourceFile, error) {
	out := make([]sourceFile, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := gengo.ReadFile(src.Path)
			if err != nil {
				return err
			}
			out[i] = sourceFile{path: src.Path, file: f}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// sourceLanguage returns from, or detects it from text.
func sourceLanguage(log *Logger, from, text string) (string, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	if from != "" {
		return from, nil
	}
	detected := langdetect.Detect(text)
	if detected == "" {
		return "", fmt.Errorf("could not detect the source language, pass --from")
	}
	log.Info(fmt.Sprintf("detected source language: %s", detected))
	return detected, nil
}

func RunQuote(ctx context.Context, opts Options, q QuoteOptions) error {
	tier, err := parseTier(q.Tier)
	if err != nil {
		return err
	}
	targets := normalizeCodes(q.To)
	if len(targets) == 0 {
		return fmt.Errorf("at least one target language is required")
	}
	text := strings.TrimSpace(q.Text)
	switch {
	case text == "" && len(q.Files) == 0:
		return fmt.Errorf("nothing to quote, pass --text or files")
	case text != "" && len(q.Files) > 0:
		return fmt.Errorf("quote either text or files, not both")
	}

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var quoted []gengo.Job
	paths := map[string]string{}
	if len(q.Files) > 0 {
		from := strings.ToLower(strings.TrimSpace(q.From))
		if from == "" {
			return fmt.Errorf("--from is required when quoting files")
		}
		srcs, err := input.Discover(q.Files)
		if err != nil {
			return err
		}
		files, err := readSources(ctx, srcs, s.cfg.Run.Concurrency)
		if err != nil {
			return err
		}
		jobs := make([]gengo.Job, 0, len(files)*len(targets))
		for _, f := range files {
			paths[f.file.Name] = mustAbsPath(f.path)
			for _, tgt := range targets {
				jobs = append(jobs, gengo.NewFileJob(gengo.NewLanguagePair(from, tgt, tier), f.file))
			}
		}
		s.log.Info(fmt.Sprintf("quoting %d file(s) into %s", len(files), strings.Join(targets, ", ")))
		quoted, err = s.api.QuoteFile(ctx, jobs)
		if err != nil {
			return err
		}
	} else {
		from, err := sourceLanguage(s.log, q.From, text)
		if err != nil {
			return err
		}
		jobs := make([]gengo.Job, 0, len(targets))
		for _, tgt := range targets {
			jobs = append(jobs, gengo.NewTextJob(gengo.NewLanguagePair(from, tgt, tier), text))
		}
		quoted, err = s.api.QuoteText(ctx, jobs)
		if err != nil {
			return err
		}
	}

	state := quotecache.State{
		Sandbox:   s.sandbox,
		CreatedAt: time.Now().UTC(),
		Jobs:      quotecache.FromJobs(quoted, paths),
	}
	if err := quotecache.SaveState(s.cfg.Quote.CacheDir, s.keys.PublicKey, state); err != nil {
		return fmt.Errorf("save quote: %w", err)
	}
	s.log.Event("quote_cached", map[string]any{"jobs": len(state.Jobs)})

	if q.Save {
		dir := q.OutDir
		if strings.TrimSpace(dir) == "" {
			dir = "."
		}
		p, err := output.UniquePath(dir, "quote", ".json")
		if err != nil {
			return err
		}
		if err := output.WriteJSON(p, state); err != nil {
			return err
		}
		s.log.Info(fmt.Sprintf("quote saved to %s", p))
	}

	rows := make([]table.Row, 0, len(quoted))
	for i, j := range quoted {
		pair, jobTier := pairText(j.Pair)
		rows = append(rows, table.Row{i + 1, pair, jobTier, string(j.Type), j.Slug, intText(j.UnitCount), moneyText(j.Credit), etaText(j.ETA)})
	}
	if err := s.out.Render(quoted, table.Row{"#", "Pair", "Tier", "Type", "Slug", "Units", "Credits", "ETA"}, rows); err != nil {
		return err
	}
	if !opts.JSON {
		s.log.Info(fmt.Sprintf("total: %s, order it with: gengo order create --from-quote", creditTotals(quoted)))
	}
	return nil
}

func mustAbsPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
