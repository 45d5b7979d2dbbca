package oracle

import (
	"regexp"

	"github.com/ajalab/symdec/log"
	"github.com/ajalab/symdec/mem"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RuleSpec is the YAML form of a Rule.
type RuleSpec struct {
	Origin      string   `yaml:"origin"`
	NotNull     bool     `yaml:"not_null"`
	NoAlias     bool     `yaml:"no_alias"`
	NeverExpand bool     `yaml:"never_expand"`
	ExpandTo    []string `yaml:"expand_to"`
}

// Rule is a representation invariant restricting how the references whose
// origin matches Origin may be resolved.
type Rule struct {
	Origin      *regexp.Regexp
	NotNull     bool
	NoAlias     bool
	NeverExpand bool
	ExpandTo    []string
}

// Compile compiles the origin pattern of s.
func (s RuleSpec) Compile() (*Rule, error) {
	if s.Origin == "" {
		return nil, errors.New("rule without origin")
	}
	re, err := regexp.Compile(s.Origin)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid origin pattern %q", s.Origin)
	}
	return &Rule{
		Origin:      re,
		NotNull:     s.NotNull,
		NoAlias:     s.NoAlias,
		NeverExpand: s.NeverExpand,
		ExpandTo:    s.ExpandTo,
	}, nil
}

// CompileRules compiles every spec.
func CompileRules(specs []RuleSpec) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(specs))
	for i, s := range specs {
		r, err := s.Compile()
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseRules parses a YAML list of rules.
func ParseRules(data []byte) ([]*Rule, error) {
	var specs []RuleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, errors.Wrap(err, "failed to parse rules")
	}
	return CompileRules(specs)
}

func (r *Rule) allowsExpansionTo(class string) bool {
	if r.NeverExpand {
		return false
	}
	if len(r.ExpandTo) == 0 {
		return true
	}
	for _, c := range r.ExpandTo {
		if c == class {
			return true
		}
	}
	return false
}

// Rules is a DecisionProcedure which additionally rejects the resolutions
// forbidden by its rules.
type Rules struct {
	DecisionProcedure
	rules []*Rule
}

// NewRules wraps dp.
func NewRules(dp DecisionProcedure, rules []*Rule) *Rules {
	return &Rules{DecisionProcedure: dp, rules: rules}
}

func (r *Rules) matching(ref *val.ReferenceSymbolic) []*Rule {
	var result []*Rule
	for _, rule := range r.rules {
		if rule.Origin.MatchString(ref.Origin()) {
			result = append(result, rule)
		}
	}
	return result
}

// IsSatAliases rejects aliasing for references matching a no_alias rule.
func (r *Rules) IsSatAliases(ref *val.ReferenceSymbolic, pos int64, o mem.Objekt) (bool, error) {
	for _, rule := range r.matching(ref) {
		if rule.NoAlias {
			log.Debug.Printf("rule %s forbids %s to alias %d", rule.Origin, ref, pos)
			return false, nil
		}
	}
	return r.DecisionProcedure.IsSatAliases(ref, pos, o)
}

// IsSatExpands rejects expansions not allowed by never_expand and expand_to rules.
func (r *Rules) IsSatExpands(ref *val.ReferenceSymbolic, class string) (bool, error) {
	for _, rule := range r.matching(ref) {
		if !rule.allowsExpansionTo(class) {
			log.Debug.Printf("rule %s forbids %s to expand to %s", rule.Origin, ref, class)
			return false, nil
		}
	}
	return r.DecisionProcedure.IsSatExpands(ref, class)
}

// IsSatNull rejects null for references matching a not_null rule.
func (r *Rules) IsSatNull(ref *val.ReferenceSymbolic) (bool, error) {
	for _, rule := range r.matching(ref) {
		if rule.NotNull {
			log.Debug.Printf("rule %s forbids %s to be null", rule.Origin, ref)
			return false, nil
		}
	}
	return r.DecisionProcedure.IsSatNull(ref)
}
