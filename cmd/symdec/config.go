package main

import (
	"os"
	"sync"
	"time"

	"github.com/ajalab/symdec/frontend"
	"github.com/ajalab/symdec/oracle"
	"github.com/ajalab/symdec/oracle/enum"
	"github.com/ajalab/symdec/oracle/sat"
	"github.com/ajalab/symdec/solver"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configuration file of symdec.
// Options are ignored when a field has the zero value.
type Config struct {
	Oracle OracleConfig `yaml:"oracle"`
	// Workers is the number of functions decided concurrently.
	Workers int `yaml:"workers"`
	// LogLevel is one of debug, info, error and disabled.
	LogLevel string `yaml:"log_level"`
	// Rules restrict how symbolic references are resolved.
	Rules []oracle.RuleSpec `yaml:"rules"`
}

// OracleConfig selects and configures the backend deciding the queries.
type OracleConfig struct {
	// Backend is one of sat, z3 and enum. The default is sat.
	Backend string `yaml:"backend"`
	// Timeout bounds each query of the sat and z3 backends.
	Timeout time.Duration `yaml:"timeout"`
	// Bound and MaxAssignments configure the enum backend.
	Bound          int64 `yaml:"bound"`
	MaxAssignments int   `yaml:"max_assignments"`
}

const (
	backendSAT  = "sat"
	backendZ3   = "z3"
	backendEnum = "enum"
)

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the configuration")
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse the configuration")
	}
	switch c.Oracle.Backend {
	case "", backendSAT, backendEnum:
	case backendZ3:
		if !solver.Available {
			return nil, solver.ErrNotAvailable
		}
	default:
		return nil, errors.Errorf("unknown oracle backend %q", c.Oracle.Backend)
	}
	if c.Workers < 0 {
		return nil, errors.Errorf("invalid number of workers %d", c.Workers)
	}
	if _, err := oracle.CompileRules(c.Rules); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *OracleConfig) newBackend() (oracle.Backend, error) {
	switch c.Backend {
	case backendZ3:
		s, err := solver.NewZ3Solver(&solver.Config{Timeout: c.Timeout})
		if err != nil {
			return nil, err
		}
		return s, nil
	case backendEnum:
		return enum.New(&enum.Config{Bound: c.Bound, MaxAssignments: c.MaxAssignments}), nil
	}
	return sat.New(&sat.Config{Timeout: c.Timeout}), nil
}

// collector sums the statistics of the procedures of all workers.
type collector struct {
	mu    sync.Mutex
	stats oracle.Stats
}

func (c *collector) add(s oracle.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.IsSat += s.IsSat
	c.stats.IsSatAliases += s.IsSatAliases
	c.stats.IsSatExpands += s.IsSatExpands
	c.stats.IsSatNull += s.IsSatNull
	c.stats.IsSatInitialized += s.IsSatInitialized
	c.stats.IsSatNotInitialized += s.IsSatNotInitialized
	c.stats.Time += s.Time
}

func (c *collector) Stats() oracle.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// counted reports its statistics to a collector when closed.
type counted struct {
	*oracle.Counting
	c *collector
}

func (dp *counted) Close() error {
	dp.c.add(dp.Counting.Stats)
	return dp.Counting.Close()
}

// frontendConfig returns the configuration of frontend.DecideAll. The
// procedures it creates report their statistics to c.
func (c *Config) frontendConfig(stats *collector) (*frontend.Config, error) {
	rules, err := oracle.CompileRules(c.Rules)
	if err != nil {
		return nil, err
	}
	return &frontend.Config{
		Workers: c.Workers,
		NewOracle: func() (oracle.DecisionProcedure, error) {
			b, err := c.Oracle.newBackend()
			if err != nil {
				return nil, err
			}
			var dp oracle.DecisionProcedure = oracle.NewProcedure(b)
			if len(rules) > 0 {
				dp = oracle.NewRules(dp, rules)
			}
			return &counted{Counting: oracle.NewCounting(dp), c: stats}, nil
		},
	}, nil
}
