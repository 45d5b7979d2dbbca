package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const testdataPackage = "github.com/ajalab/symdec/testdata"

func TestDecideCommand(t *testing.T) {
	var b bytes.Buffer
	app := newApp(&b)
	args := []string{"symdec", "--log-level", "error", "decide",
		"-f", "BranchDead", "-f", "SliceFirst", "-k", "if", "-k", "index",
		"-j", "2", "--format", "yaml", "--stats", testdataPackage}
	if err := app.Run(args); err != nil {
		t.Fatal(err)
	}

	var records []decisionRecord
	if err := yaml.Unmarshal(b.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	var summary []string
	for _, r := range records {
		summary = append(summary, r.Function[strings.LastIndex(r.Function, ".")+1:]+" "+strings.Join(r.Alternatives, ","))
	}
	expected := "BranchDead IF_TRUE,IF_FALSE|BranchDead IF_FALSE|SliceFirst ASTORE_IN,ASTORE_OUT"
	if actual := strings.Join(summary, "|"); actual != expected {
		t.Errorf("expected %s, actual %s", expected, actual)
	}
}

func TestFuncsCommand(t *testing.T) {
	var b bytes.Buffer
	if err := newApp(&b).Run([]string{"symdec", "funcs", testdataPackage}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 13 {
		t.Errorf("expected 13 functions, actual %d: %v", len(lines), lines)
	}
}

func TestCommandErrors(t *testing.T) {
	testCases := [][]string{
		{"symdec", "funcs"},
		{"symdec", "--log-level", "loud", "funcs", testdataPackage},
		{"symdec", "--config", "missing.yaml", "funcs", testdataPackage},
		{"symdec", "decide", "-k", "loop", testdataPackage},
		{"symdec", "decide", "-f", "Missing", testdataPackage},
	}
	for _, args := range testCases {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			var b bytes.Buffer
			if err := newApp(&b).Run(args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
