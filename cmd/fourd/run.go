package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fourd/builder"
	"github.com/katalvlaran/fourd/grammar"
	"github.com/katalvlaran/fourd/layout"
	"github.com/katalvlaran/fourd/metrics"
	"github.com/katalvlaran/fourd/record"
)

// job is one input laid out by its own hierarchy.
type job struct {
	name     string
	populate func(t builder.Target) error
}

// result is the line written per input when snapshots go to stdout.
type result struct {
	Name     string          `json:"name"`
	Run      string          `json:"run,omitempty"`
	Snapshot layout.Snapshot `json:"snapshot"`
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	jobs, err := collectJobs(opts)
	if err != nil {
		return err
	}

	var rec *record.Recorder
	if opts.recordDir != "" {
		if rec, err = record.Open(opts.recordDir); err != nil {
			return err
		}
		defer rec.Close()
	}

	var reg *prometheus.Registry
	if opts.metricsAddr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srv := &http.Server{
			Addr:    opts.metricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			klog.Infof("metrics: listening on %s", opts.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				klog.Errorf("metrics: %v", err)
			}
		}()
		defer srv.Close()
	}
	var col *metrics.Collector
	if reg != nil {
		col = metrics.New(reg)
	}

	if opts.outDir != "-" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return errors.Wrap(err, "fourd: create output directory")
		}
	}

	var outMu sync.Mutex
	eg, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		j := j
		eg.Go(func() error {
			res, err := j.run(gctx, opts, rec, col)
			if err != nil {
				return errors.Wrapf(err, "fourd: %s", j.name)
			}
			outMu.Lock()
			defer outMu.Unlock()
			return writeResult(opts.outDir, stdout, res)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if reg != nil && opts.linger > 0 {
		klog.Infof("metrics: lingering for %v", opts.linger)
		select {
		case <-time.After(opts.linger):
		case <-ctx.Done():
		}
	}
	return nil
}

// collectJobs parses every input up front so a bad file fails before any
// layout starts.
func collectJobs(opts options) ([]job, error) {
	var jobs []job
	seen := make(map[string]int)
	uniq := func(name string) string {
		seen[name]++
		if n := seen[name]; n > 1 {
			return name + "-" + strconv.Itoa(n)
		}
		return name
	}

	for _, path := range opts.files {
		doc, err := grammar.ParseFile(path)
		if err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		jobs = append(jobs, job{
			name: uniq(strings.TrimSuffix(base, filepath.Ext(base))),
			populate: func(t builder.Target) error {
				_, err := doc.Apply(t)
				return err
			},
		})
	}

	for _, spec := range opts.gens {
		cons, err := builder.ParseGenerator(spec)
		if err != nil {
			return nil, err
		}
		seed := opts.seed
		jobs = append(jobs, job{
			name: uniq(strings.NewReplacer(":", "-", "/", "-").Replace(spec)),
			populate: func(t builder.Target) error {
				_, err := builder.Build(t, []builder.BuilderOption{builder.WithSeed(seed)}, cons)
				return err
			},
		})
	}
	return jobs, nil
}

func (j job) run(ctx context.Context, opts options, rec *record.Recorder, col *metrics.Collector) (result, error) {
	g := layout.New(opts.levels,
		layout.WithSettings(opts.settings),
		layout.WithSeed(opts.seed),
		layout.WithMatchingRule(opts.rule),
	)
	if err := j.populate(g); err != nil {
		return result{}, err
	}
	res := result{Name: j.name, Snapshot: g.Snapshot()}

	var r *record.Run
	if rec != nil {
		r = rec.NewRun()
		res.Run = r.ID.String()
		klog.Infof("%s: recording run %s", j.name, res.Run)
	}
	klog.Infof("%s: %d vertices, %d edges, %d levels", j.name, g.VertexCount(), g.EdgeCount(), g.Levels())

	for tick := 1; tick <= opts.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		start := time.Now()
		res.Snapshot = g.Layout()
		if col != nil {
			col.Observe(j.name, g, time.Since(start))
		}
		if r != nil && (tick%opts.every == 0 || tick == opts.ticks) {
			if err := r.Put(tick, res.Snapshot); err != nil {
				return result{}, err
			}
		}
		if tick%100 == 0 {
			klog.V(2).Infof("%s: tick %d", j.name, tick)
		}
	}

	if err := g.CheckInvariants(); err != nil {
		return result{}, err
	}
	for _, st := range g.Stats() {
		klog.V(1).Infof("%s: level %d: %d vertices, %d edges, %d matched, %d flips",
			j.name, st.Depth, st.Vertices, st.Edges, st.Matched, st.Flips)
	}
	return res, nil
}

func writeResult(outDir string, stdout io.Writer, res result) error {
	if outDir == "-" {
		return json.NewEncoder(stdout).Encode(res)
	}
	buf, err := json.MarshalIndent(res.Snapshot, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "fourd: encode %s", res.Name)
	}
	path := filepath.Join(outDir, res.Name+".json")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return errors.Wrapf(err, "fourd: write %s", path)
	}
	klog.Infof("%s: wrote %s", res.Name, path)
	return nil
}
