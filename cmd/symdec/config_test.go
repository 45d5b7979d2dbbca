package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/solver"
	"github.com/ajalab/symdec/val"
	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
oracle:
  backend: enum
  timeout: 2s
  bound: 8
  max_assignments: 1000
workers: 2
log_level: debug
rules:
  - origin: "^head"
    not_null: true
    expand_to: [Node]
`)
	c, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	expected := &Config{
		Oracle: OracleConfig{
			Backend:        "enum",
			Timeout:        2 * time.Second,
			Bound:          8,
			MaxAssignments: 1000,
		},
		Workers:  2,
		LogLevel: "debug",
		Rules: []oracle.RuleSpec{
			{Origin: "^head", NotNull: true, ExpandTo: []string{"Node"}},
		},
	}
	if diff := cmp.Diff(expected, c); diff != "" {
		t.Errorf("(-expected +actual)\n%s", diff)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	testCases := []string{
		"oracle: {backend: cvc5}",
		"workers: -1",
		"rules: [{not_null: true}]",
		"rules: [{origin: \"(\"}]",
		"oracle: [",
	}
	if !solver.Available {
		testCases = append(testCases, "oracle: {backend: z3}")
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			if _, err := ParseConfig([]byte(tc)); err == nil {
				t.Errorf("expected an error for %q", tc)
			}
		})
	}
}

func TestFrontendConfig(t *testing.T) {
	for _, backend := range []string{"", "sat", "enum"} {
		t.Run(backend, func(t *testing.T) {
			config := &Config{
				Oracle:  OracleConfig{Backend: backend},
				Workers: 3,
				Rules:   []oracle.RuleSpec{{Origin: "^x$", NotNull: true}},
			}
			stats := &collector{}
			fc, err := config.frontendConfig(stats)
			if err != nil {
				t.Fatal(err)
			}
			if fc.Workers != 3 {
				t.Errorf("expected 3 workers, actual %d", fc.Workers)
			}

			dp, err := fc.NewOracle()
			if err != nil {
				t.Fatal(err)
			}
			x := val.NewTerm(val.Int, "x")
			cond, err := val.Lt(x, val.NewSimplex(val.Int, 2))
			if err != nil {
				t.Fatal(err)
			}
			if ok, err := dp.IsSat(cond); err != nil || !ok {
				t.Errorf("IsSat: expected true, actual %v (%v)", ok, err)
			}
			if _, ok := dp.(*counted).DecisionProcedure.(*oracle.Rules); !ok {
				t.Errorf("expected the rules to wrap the procedure")
			}
			if err := dp.Close(); err != nil {
				t.Fatal(err)
			}
			if s := stats.Stats(); s.IsSat != 1 || s.Total() != 1 {
				t.Errorf("expected one query, actual %s", s)
			}
		})
	}
}
