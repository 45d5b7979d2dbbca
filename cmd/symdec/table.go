package main

import (
	"io"
	"os"
	"strings"

	"github.com/ajalab/symdec/frontend"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGray  = "\x1b[90m"
)

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type cell struct {
	text  string
	color string
}

// table prints rows of cells aligned by their display width.
type table struct {
	header []string
	rows   [][]cell
	color  bool
}

func (t *table) add(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	ws := make([]int, len(t.header))
	for i, h := range t.header {
		ws[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c.text); w > ws[i] {
				ws[i] = w
			}
		}
	}
	return ws
}

func (t *table) write(w io.Writer) error {
	ws := t.widths()
	header := make([]cell, len(t.header))
	for i, h := range t.header {
		header[i] = cell{text: h}
	}
	if err := t.writeRow(w, header, ws); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := t.writeRow(w, row, ws); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) writeRow(w io.Writer, row []cell, ws []int) error {
	var b strings.Builder
	for i, c := range row {
		text := c.text
		if i < len(row)-1 {
			text = runewidth.FillRight(text, ws[i]+2)
		}
		if t.color && c.color != "" {
			text = c.color + text + colorReset
		}
		b.WriteString(text)
	}
	_, err := io.WriteString(w, strings.TrimRight(b.String(), " ")+"\n")
	return err
}

func decisionTable(ds []*frontend.Decision, color bool) *table {
	t := &table{
		header: []string{"POSITION", "FUNCTION", "KIND", "OUTCOME", "ALTERNATIVES"},
		color:  color,
	}
	for _, d := range ds {
		pos := cell{text: d.Pos.String()}
		fn := cell{text: d.Func}
		kind := cell{text: d.Kind.String()}
		if d.Err != nil {
			t.add(pos, fn, kind, cell{text: "-", color: colorRed}, cell{text: d.Err.Error(), color: colorRed})
			continue
		}
		outcome := cell{text: d.Outcome.String()}
		alts := cell{text: strings.Join(d.Alternatives, " ")}
		if len(d.Alternatives) <= 1 {
			// No branching here.
			alts.color = colorGray
		}
		t.add(pos, fn, kind, outcome, alts)
	}
	return t
}

type decisionRecord struct {
	Position     string        `yaml:"position"`
	Function     string        `yaml:"function"`
	Kind         frontend.Kind `yaml:"kind"`
	Outcome      string        `yaml:"outcome,omitempty"`
	Alternatives []string      `yaml:"alternatives,omitempty"`
	Error        string        `yaml:"error,omitempty"`
}

func writeYAML(w io.Writer, ds []*frontend.Decision) error {
	records := make([]decisionRecord, len(ds))
	for i, d := range ds {
		r := decisionRecord{
			Position: d.Pos.String(),
			Function: d.Func,
			Kind:     d.Kind,
		}
		if d.Err != nil {
			r.Error = d.Err.Error()
		} else {
			r.Outcome = d.Outcome.String()
			r.Alternatives = d.Alternatives
		}
		records[i] = r
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

func writeDecisions(w io.Writer, ds []*frontend.Decision, format string) error {
	switch format {
	case "", "table":
		return decisionTable(ds, isTerminal(w)).write(w)
	case "yaml":
		return writeYAML(w, ds)
	}
	return errors.Errorf("unknown format %q", format)
}
