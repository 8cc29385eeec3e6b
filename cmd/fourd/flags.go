package main

import (
	"flag"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/matching"
)

// errUsage marks a command line that cannot be run.
var errUsage = errors.New("fourd: usage")

type options struct {
	levels   int
	ticks    int
	every    int
	seed     int64
	rule     matching.Rule
	settings core.Settings

	recordDir   string
	metricsAddr string
	linger      time.Duration
	outDir      string

	gens  []string
	files []string
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var (
		opts         options
		settingsPath string
		ruleName     string
		gens         stringList
	)
	fs.IntVar(&opts.levels, "levels", 3, "number of coarser levels beneath the root")
	fs.IntVar(&opts.ticks, "ticks", 500, "layout ticks per input")
	fs.IntVar(&opts.every, "every", 1, "record a snapshot every N ticks (the last tick is always recorded)")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (0 selects the fixed default)")
	fs.StringVar(&ruleName, "rule", matching.RuleGreedy.String(), "matching rule: greedy or local-minimum")
	fs.StringVar(&settingsPath, "settings", "", "YAML settings file")
	fs.StringVar(&opts.recordDir, "record", "", "badger directory for per-tick snapshots")
	fs.StringVar(&opts.metricsAddr, "metrics", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.DurationVar(&opts.linger, "linger", 0, "keep serving metrics this long after the last input finishes")
	fs.StringVar(&opts.outDir, "out", ".", `directory for final snapshots, or "-" for stdout`)
	fs.Var(&gens, "gen", "generator spec such as grid:4x6 or platonic:icosahedron (repeatable)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.gens = gens
	opts.files = fs.Args()

	var err error
	if opts.rule, err = matching.ParseRule(ruleName); err != nil {
		return options{}, errors.Wrap(errUsage, err.Error())
	}
	opts.settings = core.DefaultSettings()
	if settingsPath != "" {
		if opts.settings, err = core.LoadSettingsFile(settingsPath); err != nil {
			return options{}, err
		}
	}

	switch {
	case opts.levels < 0:
		return options{}, errors.Wrapf(errUsage, "-levels %d: must be >= 0", opts.levels)
	case opts.ticks < 0:
		return options{}, errors.Wrapf(errUsage, "-ticks %d: must be >= 0", opts.ticks)
	case opts.every < 1:
		return options{}, errors.Wrapf(errUsage, "-every %d: must be >= 1", opts.every)
	case len(opts.gens) == 0 && len(opts.files) == 0:
		return options{}, errors.Wrap(errUsage, "no inputs: pass edge-list files or -gen")
	}
	return opts, nil
}
