package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/classview/internal/config"
)

// ExpandTargets turns configured targets into jobs. A target whose input is
// a glob yields one job per match; when it matches more than one file each
// job writes into a subdirectory named after its input.
func ExpandTargets(targets []config.Target) ([]Job, error) {
	var jobs []Job
	for i, t := range targets {
		if !hasMeta(t.Input) {
			jobs = append(jobs, Job{Input: t.Input, OutputDir: t.Output, System: t.System})
			continue
		}

		matches, err := doublestar.FilepathGlob(t.Input, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("targets[%d]: bad pattern %q: %w", i, t.Input, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("targets[%d]: no files match %q", i, t.Input)
		}
		for _, m := range matches {
			out := t.Output
			if len(matches) > 1 {
				base := filepath.Base(m)
				out = filepath.Join(t.Output, strings.TrimSuffix(base, filepath.Ext(base)))
			}
			jobs = append(jobs, Job{Input: m, OutputDir: out, System: t.System})
		}
	}
	return jobs, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// RunAll runs jobs concurrently, bounded by opts.Concurrency. The first
// failure cancels jobs that have not started yet. Reports are returned in
// job order; entries for jobs that did not complete are nil.
func RunAll(ctx context.Context, jobs []Job, opts Options) ([]*Report, error) {
	reports := make([]*Report, len(jobs))
	rep := opts.reporter()
	logger := opts.logger()

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	rep.Start(len(jobs))
	defer rep.Finish()

	var mu sync.Mutex
	done := 0

	jobOpts := opts
	jobOpts.Reporter = nil
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := Run(ctx, job, jobOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Input, err)
			}
			reports[i] = report

			mu.Lock()
			done++
			rep.Update(done, job.Input)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}

	logger.Info("batch complete", "jobs", len(jobs))
	return reports, nil
}
