package main

import (
	"bytes"
	"go/token"
	"strings"
	"testing"

	"github.com/ajalab/symdec"
	"github.com/ajalab/symdec/frontend"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func testDecisions() []*frontend.Decision {
	return []*frontend.Decision{
		{
			Func:         "p.F",
			Pos:          token.Position{Filename: "f.go", Line: 3, Column: 5},
			Kind:         frontend.If,
			Alternatives: []string{"IF_TRUE", "IF_FALSE"},
			Outcome:      symdec.NewOutcome(false, true),
		},
		{
			Func:         "p.Größe",
			Pos:          token.Position{Filename: "f.go", Line: 12, Column: 9},
			Kind:         frontend.Deref,
			Alternatives: []string{"NULL"},
			Outcome:      symdec.NewResolutionOutcome(true, true, false),
		},
		{
			Func: "p.F",
			Pos:  token.Position{Filename: "f.go", Line: 20, Column: 2},
			Kind: frontend.Index,
			Err:  errors.New("unsupported"),
		},
	}
}

func TestTable(t *testing.T) {
	var b bytes.Buffer
	if err := decisionTable(testDecisions(), false).write(&b); err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"POSITION   FUNCTION  KIND   OUTCOME  ALTERNATIVES",
		"f.go:3:5   p.F       if     FT       IF_TRUE IF_FALSE",
		"f.go:12:9  p.Größe   deref  TTF      NULL",
		"f.go:20:2  p.F       index  -        unsupported",
	}
	if diff := cmp.Diff(expected, strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")); diff != "" {
		t.Errorf("(-expected +actual)\n%s", diff)
	}
}

func TestTableColor(t *testing.T) {
	var b bytes.Buffer
	if err := decisionTable(testDecisions(), true).write(&b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(b.String(), "\n")
	if strings.Contains(lines[1], colorReset) {
		t.Errorf("unexpected color in %q", lines[1])
	}
	if !strings.Contains(lines[2], colorGray+"NULL"+colorReset) {
		t.Errorf("expected gray alternatives in %q", lines[2])
	}
	if !strings.Contains(lines[3], colorRed+"unsupported"+colorReset) {
		t.Errorf("expected a red error in %q", lines[3])
	}
}

func TestWriteYAML(t *testing.T) {
	var b bytes.Buffer
	if err := writeDecisions(&b, testDecisions(), "yaml"); err != nil {
		t.Fatal(err)
	}
	var records []map[string]interface{}
	if err := yaml.Unmarshal(b.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, actual %d", len(records))
	}
	if records[0]["kind"] != "if" || records[0]["outcome"] != "FT" {
		t.Errorf("unexpected record %v", records[0])
	}
	if records[2]["error"] != "unsupported" || records[2]["alternatives"] != nil {
		t.Errorf("unexpected record %v", records[2])
	}

	if err := writeDecisions(&b, nil, "csv"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
