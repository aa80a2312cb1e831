package quotecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gengo-go/sdk/gengo"
)

// State is the last quote taken for an account. Order creation reads it back
// so quoted jobs can be ordered without resending their payloads.
type State struct {
	Sandbox   bool      `json:"sandbox"`
	CreatedAt time.Time `json:"created_at"`
	Jobs      []Entry   `json:"jobs"`
}

type Entry struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Source     string `json:"lc_src"`
	Target     string `json:"lc_tgt"`
	Tier       string `json:"tier"`
	Slug       string `json:"slug,omitempty"`
	Text       string `json:"body_src,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	UnitCount  int    `json:"unit_count,omitempty"`
	ETA        int    `json:"eta,omitempty"`
	Credits    string `json:"credits,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

func accountDir(cacheDir, publicKey string) (string, error) {
	key := strings.TrimSpace(publicKey)
	if key == "" {
		return "", fmt.Errorf("account key must not be empty")
	}
	if strings.TrimSpace(cacheDir) == "" {
		return "", fmt.Errorf("cache dir must not be empty")
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(cacheDir, hex.EncodeToString(sum[:8])), nil
}

func stateFile(cacheDir, publicKey string) (string, error) {
	dir, err := accountDir(cacheDir, publicKey)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_quote.json"), nil
}

// LoadState returns an empty state when nothing has been quoted yet.
func LoadState(cacheDir, publicKey string) (State, error) {
	var s State
	p, err := stateFile(cacheDir, publicKey)
	if err != nil {
		return s, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("quote cache is corrupt: %w", err)
	}
	return s, nil
}

func SaveState(cacheDir, publicKey string, s State) error {
	dir, err := accountDir(cacheDir, publicKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	p, err := stateFile(cacheDir, publicKey)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func Clear(cacheDir, publicKey string) error {
	dir, err := accountDir(cacheDir, publicKey)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}

// FromJobs records quoted jobs. paths maps a file name to the local path it
// was read from.
func FromJobs(jobs []gengo.Job, paths map[string]string) []Entry {
	out := make([]Entry, 0, len(jobs))
	for i, j := range jobs {
		e := Entry{
			Index:      i,
			Type:       string(j.Type),
			Slug:       j.Slug,
			Text:       j.SourceText,
			Identifier: j.Identifier,
		}
		if j.Pair != nil {
			e.Source = j.Pair.Source.Code
			e.Target = j.Pair.Target.Code
			e.Tier = string(j.Pair.Tier)
		}
		if j.SourceFile != nil {
			e.FilePath = paths[j.SourceFile.Name]
		}
		if j.UnitCount != nil {
			e.UnitCount = *j.UnitCount
		}
		if j.ETA != nil {
			e.ETA = *j.ETA
		}
		if j.Credit != nil {
			e.Credits = j.Credit.Amount.String()
			e.Currency = string(j.Credit.Currency)
		}
		out = append(out, e)
	}
	return out
}

// Job rebuilds an orderable job. File jobs reference the uploaded file by
// its quote identifier.
func (e Entry) Job() (gengo.Job, error) {
	tier, ok := gengo.ParseTier(e.Tier)
	if !ok {
		return gengo.Job{}, fmt.Errorf("quote entry %d: unknown tier %q", e.Index, e.Tier)
	}
	pair := gengo.NewLanguagePair(e.Source, e.Target, tier)
	switch gengo.JobType(e.Type) {
	case gengo.JobText:
		j := gengo.NewTextJob(pair, e.Text)
		if e.Slug != "" {
			j.Slug = e.Slug
		}
		return j, nil
	case gengo.JobFile:
		if e.Identifier == "" {
			return gengo.Job{}, fmt.Errorf("quote entry %d: file job has no identifier", e.Index)
		}
		return gengo.Job{
			Pair:       &pair,
			Type:       gengo.JobFile,
			Slug:       e.Slug,
			Identifier: e.Identifier,
		}, nil
	}
	return gengo.Job{}, fmt.Errorf("quote entry %d: unknown job type %q", e.Index, e.Type)
}
