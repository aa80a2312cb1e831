package output

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func random8() (string, error) {
	b := make([]byte, 8)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// UniquePath returns a path of the form <dir>/<prefix>_<id><ext> that does not
// exist yet, creating dir when needed.
func UniquePath(dir, prefix, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	for i := 0; i < 100; i++ {
		s, err := random8()
		if err != nil {
			return "", err
		}
		p := filepath.Join(dir, fmt.Sprintf("%s_%s%s", prefix, s, ext))
		if _, err := os.Stat(p); err == nil {
			continue
		}
		return p, nil
	}
	return "", fmt.Errorf("could not find a free file name in %s", dir)
}

// WriteJSON stores v as indented JSON at path.
func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Printer renders command results as a table, or as JSON when JSON is set.
type Printer struct {
	JSON bool
	Out  io.Writer
}

func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Printer) PrintJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out(), string(b))
	return err
}

func (p *Printer) Table(header table.Row, rows []table.Row) {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out())
	tw.AppendHeader(header)
	for _, r := range rows {
		tw.AppendRow(r)
	}
	tw.Render()
}

// Render prints v as JSON in JSON mode and the table otherwise.
func (p *Printer) Render(v any, header table.Row, rows []table.Row) error {
	if p.JSON {
		return p.PrintJSON(v)
	}
	p.Table(header, rows)
	return nil
}

// Fields prints a two-column key/value table.
func (p *Printer) Fields(v any, pairs [][2]any) error {
	if p.JSON {
		return p.PrintJSON(v)
	}
	rows := make([]table.Row, 0, len(pairs))
	for _, kv := range pairs {
		rows = append(rows, table.Row{kv[0], kv[1]})
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out())
	tw.AppendRows(rows)
	tw.Render()
	return nil
}
