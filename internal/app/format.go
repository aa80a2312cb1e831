package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gengo-go/sdk/gengo"
)

func isContextCanceledErr(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func humanDurationShort(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	sec := int64(d.Round(time.Second) / time.Second)
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func intText(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func moneyText(m *gengo.Money) string {
	if m == nil {
		return "-"
	}
	return m.Amount.StringFixed(2) + " " + string(m.Currency)
}

func decimalText(d *decimal.Decimal, c gengo.Currency) string {
	if d == nil {
		return "-"
	}
	return strings.TrimSpace(d.StringFixed(2) + " " + string(c))
}

func timeText(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func etaText(p *int) string {
	if p == nil || *p < 0 {
		return "-"
	}
	return humanDurationShort(time.Duration(*p) * time.Second)
}

func boolText(p *bool) string {
	if p == nil {
		return "-"
	}
	if *p {
		return "yes"
	}
	return "no"
}

func pairText(p *gengo.LanguagePair) (string, string) {
	if p == nil {
		return "-", "-"
	}
	return p.Source.Code + " > " + p.Target.Code, string(p.Tier)
}

// creditTotals sums job credits per currency, in currency order.
func creditTotals(jobs []gengo.Job) string {
	sums := map[gengo.Currency]decimal.Decimal{}
	for _, j := range jobs {
		if j.Credit == nil {
			continue
		}
		sums[j.Credit.Currency] = sums[j.Credit.Currency].Add(j.Credit.Amount)
	}
	if len(sums) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(sums))
	for c := range sums {
		keys = append(keys, string(c))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, c := range keys {
		parts = append(parts, sums[gengo.Currency(c)].StringFixed(2)+" "+c)
	}
	return strings.Join(parts, ", ")
}

// normalizeCodes splits comma separated language codes, lowercases them and
// drops duplicates.
func normalizeCodes(in []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, item := range in {
		for _, code := range strings.Split(item, ",") {
			code = strings.ToLower(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	return out
}

func parseTier(s string) (gengo.Tier, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return gengo.TierStandard, nil
	}
	tier, ok := gengo.ParseTier(t)
	if !ok {
		return "", fmt.Errorf("unknown tier %q, expected standard, pro or ultra", s)
	}
	return tier, nil
}

// friendlyError adds a hint to errors a user can act on.
func friendlyError(err error) error {
	if gengo.IsNotEnoughCredits(err) {
		return fmt.Errorf("not enough credits in the account, top up and retry: %w", err)
	}
	return err
}
