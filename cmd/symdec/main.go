package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ajalab/symdec/frontend"
	"github.com/ajalab/symdec/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Error.Printf("%v", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "symdec"
	app.Usage = "decide the branches and reference resolutions of Go functions"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load the configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, error or disabled (overrides the configuration)",
		},
	}

	var config *Config
	app.Before = func(c *cli.Context) error {
		config = &Config{}
		if path := c.String("config"); path != "" {
			var err error
			if config, err = LoadConfig(path); err != nil {
				return err
			}
		}
		level := config.LogLevel
		if l := c.String("log-level"); l != "" {
			level = l
		}
		if level != "" && !log.SetLevelByName(level) {
			return errors.Errorf("unknown log level %q", level)
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      "decide",
			Usage:     "decide the decision points of the functions in packages",
			ArgsUsage: "PACKAGE...",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "func, f",
					Usage: "decide only the function `NAME` (repeatable)",
				},
				cli.StringSliceFlag{
					Name:  "kind, k",
					Usage: "report only the points of `KIND`: if, switch, nil, deref, index or make",
				},
				cli.IntFlag{
					Name:  "workers, j",
					Usage: "decide `N` functions concurrently (overrides the configuration)",
				},
				cli.StringFlag{
					Name:  "format",
					Value: "table",
					Usage: "output format: table or yaml",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "log the number of oracle queries",
				},
			},
			Action: func(c *cli.Context) error {
				return decide(c, config)
			},
		},
		{
			Name:      "funcs",
			Usage:     "list the functions of packages",
			ArgsUsage: "PACKAGE...",
			Action: func(c *cli.Context) error {
				prog, err := load(c)
				if err != nil {
					return err
				}
				fns, err := prog.Funcs()
				if err != nil {
					return err
				}
				for _, fn := range fns {
					fmt.Fprintln(c.App.Writer, fn)
				}
				return nil
			},
		},
	}
	return app
}

func load(c *cli.Context) (*frontend.Program, error) {
	if !c.Args().Present() {
		return nil, errors.New("no packages given")
	}
	return frontend.Load(c.Args()...)
}

func decide(c *cli.Context, config *Config) error {
	kinds := make(map[frontend.Kind]bool)
	for _, name := range c.StringSlice("kind") {
		k, err := frontend.ParseKind(name)
		if err != nil {
			return err
		}
		kinds[k] = true
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}

	prog, err := load(c)
	if err != nil {
		return err
	}
	fns, err := prog.Funcs(c.StringSlice("func")...)
	if err != nil {
		return err
	}

	stats := &collector{}
	fc, err := config.frontendConfig(stats)
	if err != nil {
		return err
	}
	ds, err := frontend.DecideAll(context.Background(), fc, prog, fns)
	if err != nil {
		return err
	}
	if c.Bool("stats") {
		log.Info.Printf("%d functions, %d points: %s", len(fns), len(ds), stats.Stats())
	}

	if len(kinds) > 0 {
		filtered := ds[:0]
		for _, d := range ds {
			if kinds[d.Kind] {
				filtered = append(filtered, d)
			}
		}
		ds = filtered
	}
	return writeDecisions(c.App.Writer, ds, c.String("format"))
}
