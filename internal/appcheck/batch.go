package appcheck

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fulldiveVR/codex/internal/validator"
)

// Input is one candidate of a batch.
type Input struct {
	// Name is the nominal file name used for locations.
	Name   string
	Source string
}

// ValidateAll validates every input independently with at most jobs
// running at once; jobs <= 0 means no limit. Results keep input order.
// The first Go error cancels the rest of the batch.
func (c *Checker) ValidateAll(ctx context.Context, inputs []Input, opts validator.Options, jobs int) ([]*validator.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]*validator.Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for idx, in := range inputs {
		fileOpts := opts
		fileOpts.FileName = in.Name
		g.Go(func() error {
			r, err := c.ValidateWithTimeout(gctx, in.Source, fileOpts, c.timeout)
			if err != nil {
				return err
			}
			results[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
