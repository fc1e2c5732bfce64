package coordinator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
)

// DefaultConcurrency bounds how many detail requests run at once.
const DefaultConcurrency = 4

// ErrNoCodes is returned by Run when there is nothing to fetch.
var ErrNoCodes = errors.New("no scheme codes given")

// DetailSource is the part of the fund service the coordinator needs.
type DetailSource interface {
	GetDetail(ctx context.Context, schemeCode string) <-chan resource.Result[fund.Detail]
}

// Outcome is the terminal result for one scheme code.
type Outcome struct {
	Code   string
	Result resource.Result[fund.Detail]
}

// Coordinator fetches the details of several schemes concurrently
type Coordinator struct {
	source      DetailSource
	concurrency int
}

// New creates a new Coordinator. A non-positive concurrency falls back to DefaultConcurrency.
func New(source DetailSource, concurrency int) *Coordinator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Coordinator{
		source:      source,
		concurrency: concurrency,
	}
}

// Run requests every code through the source, at most c.concurrency at a
// time, and returns one Outcome per code in input order. Failed requests are
// reported in their Outcome rather than as an error; Run only fails when
// there are no codes or ctx ends before every request completed.
func (c *Coordinator) Run(ctx context.Context, codes []string) ([]Outcome, error) {
	if len(codes) == 0 {
		return nil, ErrNoCodes
	}

	outcomes := make([]Outcome, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Outcome{
				Code:   code,
				Result: resource.Await(c.source.GetDetail(gctx, code)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
