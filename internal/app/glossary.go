package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"gengo-go/sdk/gengo"
)

func languageCodes(langs []gengo.Language) string {
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	if len(codes) == 0 {
		return "-"
	}
	return strings.Join(codes, ",")
}

func sourceCode(l *gengo.Language) string {
	if l == nil {
		return "-"
	}
	return l.Code
}

func RunGlossaries(ctx context.Context, opts Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	glossaries, err := s.api.Glossaries(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(glossaries))
	for _, g := range glossaries {
		rows = append(rows, table.Row{intText(g.ID), g.Title, sourceCode(g.SourceLanguage), languageCodes(g.TargetLanguages), intText(g.UnitCount), boolText(&g.IsPublic), timeText(g.CreatedAt)})
	}
	return s.out.Render(glossaries, table.Row{"ID", "Title", "Source", "Targets", "Units", "Public", "Created"}, rows)
}

func RunGlossary(ctx context.Context, opts Options, id int) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	g, err := s.api.Glossary(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("glossary %d not found", id)
	}
	return s.out.Fields(g, [][2]any{
		{"Glossary", intText(g.ID)},
		{"Title", g.Title},
		{"Description", g.Description},
		{"Source", sourceCode(g.SourceLanguage)},
		{"Targets", languageCodes(g.TargetLanguages)},
		{"Units", intText(g.UnitCount)},
		{"Public", boolText(&g.IsPublic)},
		{"Status", intText(g.Status)},
		{"Created", timeText(g.CreatedAt)},
	})
}
