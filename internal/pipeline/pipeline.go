package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ziadkadry99/classview/internal/classify"
	"github.com/ziadkadry99/classview/internal/progress"
	"github.com/ziadkadry99/classview/internal/site"
	"github.com/ziadkadry99/classview/internal/systems"
)

// Job is one generation: an export file rendered into a directory with the
// preset of a system key.
type Job struct {
	Input     string
	OutputDir string
	System    string
}

// Options tune a run.
type Options struct {
	Logger   *slog.Logger
	Reporter progress.Reporter
	// BuildID and Now are passed to the site generator.
	BuildID string
	Now     func() time.Time
	// SearchDelay is the in-page search debounce; zero keeps
	// site.DefaultSearchDelay.
	SearchDelay time.Duration
	// Concurrency bounds RunAll; values below 1 mean 1.
	Concurrency int
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) reporter() progress.Reporter {
	if o.Reporter == nil {
		return progress.Nop{}
	}
	return o.Reporter
}

// Report describes a completed generation.
type Report struct {
	Job      Job
	System   systems.Preset
	Export   *classify.Export
	Stats    classify.Stats
	Path     string
	Bytes    int64
	Duration time.Duration
}

// Summary returns the operator-facing lines printed after a generation.
func (r *Report) Summary() []string {
	return []string{
		fmt.Sprintf("Top-level items: %d", r.Stats.TopLevel),
		fmt.Sprintf("Total items: %d", r.Stats.Total),
		fmt.Sprintf("Maximum depth: %d", r.Stats.MaxDepth),
		fmt.Sprintf("Wrote %s (%s)", r.Path, humanize.Bytes(uint64(r.Bytes))),
	}
}

const runSteps = 4

// Run validates the system key, reads and transforms the input, and writes
// the document. Every failure happens before the output file is touched.
func Run(ctx context.Context, job Job, opts Options) (*Report, error) {
	logger := opts.logger().With("input", job.Input, "system", job.System)
	rep := opts.reporter()
	start := time.Now()

	rep.Start(runSteps)
	defer rep.Finish()

	rep.Update(1, "Resolving system "+job.System)
	preset, err := systems.Lookup(job.System)
	if err != nil {
		return nil, err
	}

	rep.Update(2, "Reading "+job.Input)
	export, err := Load(job.Input)
	if err != nil {
		return nil, err
	}
	stats := export.Stats()
	logger.Debug("export transformed", "items", stats.Total, "top_level", stats.TopLevel)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.Update(3, "Rendering "+preset.Title)
	gen := site.New(job.OutputDir, preset)
	gen.BuildID = opts.BuildID
	gen.Now = opts.Now
	if opts.SearchDelay > 0 {
		gen.SearchDelay = opts.SearchDelay
	}

	res, err := gen.Generate(export)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", job.OutputDir, err)
	}
	rep.Update(4, "Wrote "+res.Path)

	report := &Report{
		Job:      job,
		System:   preset,
		Export:   export,
		Stats:    res.Stats,
		Path:     res.Path,
		Bytes:    res.Bytes,
		Duration: time.Since(start),
	}
	logger.Info("page generated",
		"path", report.Path,
		"bytes", report.Bytes,
		"items", report.Stats.Total,
		"duration", report.Duration,
	)
	return report, nil
}

// Load reads and transforms an export file.
func Load(path string) (*classify.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	export, err := classify.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("transforming %s: %w", path, err)
	}
	return export, nil
}
