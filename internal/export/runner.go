package export

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/warpdl/cookex/pkg/logger"
)

// Runner drains a set of sources into one ordered record sequence. Sources
// are independent, so the parallel path runs one worker per source; results
// are collected per slot so the output order stays the insertion order of the
// source list either way.
type Runner struct {
	Log logger.Logger
	// Parallel enables one worker per source instead of sequential draining.
	Parallel bool
	// OnSourceDone, when set, is called after each source finishes, with the
	// number of records it produced. Used by the CLI progress bar.
	OnSourceDone func(name string, count int)
}

// Run processes every source and concatenates their records in source order.
// A failing source is logged and skipped; Run itself never fails.
func (r *Runner) Run(ctx context.Context, sources []Source) []Record {
	log := r.Log
	if log == nil {
		log = logger.NewNopLogger()
	}

	perSource := make([][]Record, len(sources))
	if r.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, src := range sources {
			i, src := i, src
			g.Go(func() error {
				perSource[i] = r.drain(gctx, log, src)
				return nil
			})
		}
		// Workers only report nil; Wait is for completion, not errors.
		_ = g.Wait()
	} else {
		for i, src := range sources {
			perSource[i] = r.drain(ctx, log, src)
		}
	}

	var out []Record
	for _, recs := range perSource {
		out = append(out, recs...)
	}
	return out
}

func (r *Runner) drain(ctx context.Context, log logger.Logger, src Source) []Record {
	recs, err := src.Records(ctx)
	if err != nil {
		log.Warning("%s: no cookies from this source: %s", src.Name(), err)
		recs = nil
	} else {
		log.Info("%s: %d cookies", src.Name(), len(recs))
	}
	if r.OnSourceDone != nil {
		r.OnSourceDone(src.Name(), len(recs))
	}
	return recs
}
