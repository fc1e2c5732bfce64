// Package service is the single source of truth for fund data. It hides
// upstream latency and failures behind a caching read layer that prefers
// stale data over errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	"fundexplorer/internal/cache"
	"fundexplorer/internal/fetcher"
	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
)

// DefaultTopLimit is the number of funds GetTop returns when asked for the default.
const DefaultTopLimit = 50

// Service serves fund listings and details from cache or upstream.
// It is safe for concurrent use.
type Service struct {
	source fetcher.DataSource
	cache  *cache.Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report degraded and failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service reading from source. A nil store gets a fresh one
// with the default TTL.
func New(source fetcher.DataSource, store *cache.Store, opts ...Option) *Service {
	if store == nil {
		store = cache.New(cache.DefaultTTL)
	}

	s := &Service{
		source: source,
		cache:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheStats reports what the service currently holds in memory.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ListAll streams every fund, served from a fresh snapshot when possible.
func (s *Service) ListAll(ctx context.Context) <-chan resource.Result[[]fund.Summary] {
	return stream(ctx, func(ctx context.Context) resource.Result[[]fund.Summary] {
		funds, err := s.workingSet(ctx)
		if err != nil {
			return fail[[]fund.Summary](s.logger, "list", err)
		}
		return resource.Success(funds)
	})
}

// Search streams the funds whose name contains query, ignoring case.
func (s *Service) Search(ctx context.Context, query string) <-chan resource.Result[[]fund.Summary] {
	return stream(ctx, func(ctx context.Context) resource.Result[[]fund.Summary] {
		funds, err := s.workingSet(ctx)
		if err != nil {
			return fail[[]fund.Summary](s.logger, "search", err, "query", query)
		}
		return resource.Success(fund.Filter(funds, func(f fund.Summary) bool {
			return fund.NameContains(f.Name, query)
		}))
	})
}

// GetTop streams up to limit funds from the well-known fund houses, in
// listing order. A negative limit yields an empty list.
func (s *Service) GetTop(ctx context.Context, limit int) <-chan resource.Result[[]fund.Summary] {
	if limit < 0 {
		limit = 0
	}

	return stream(ctx, func(ctx context.Context) resource.Result[[]fund.Summary] {
		funds, err := s.workingSet(ctx)
		if err != nil {
			return fail[[]fund.Summary](s.logger, "top", err, "limit", limit)
		}

		top := fund.Filter(funds, func(f fund.Summary) bool {
			return fund.IsTopFundHouse(f.Name)
		})
		if len(top) > limit {
			top = top[:limit]
		}
		return resource.Success(top)
	})
}

// GetDetail streams the detail of one scheme. Once fetched, a scheme's
// detail is served from cache for the lifetime of the process.
func (s *Service) GetDetail(ctx context.Context, schemeCode string) <-chan resource.Result[fund.Detail] {
	return stream(ctx, func(ctx context.Context) resource.Result[fund.Detail] {
		if d, ok := s.cache.Detail(schemeCode); ok {
			return resource.Success(d)
		}

		dto, err := s.source.FetchFundDetail(ctx, schemeCode)
		if err != nil {
			// another caller may have stored it while we were waiting
			if d, ok := s.cache.Detail(schemeCode); ok {
				s.logger.Warn("serving cached fund detail after fetch failure",
					"scheme_code", schemeCode, "error", err)
				return resource.Success(d)
			}
			return fail[fund.Detail](s.logger, "detail", err, "scheme_code", schemeCode)
		}

		d := fund.DetailFromDTO(dto)
		s.cache.PutDetail(schemeCode, d)
		return resource.Success(d)
	})
}

// workingSet returns the all-funds listing: the fresh snapshot if there is
// one, otherwise a refetch. When the refetch fails any older snapshot is
// returned instead of the error.
func (s *Service) workingSet(ctx context.Context) ([]fund.Summary, error) {
	if snap, ok := s.cache.FreshFunds(); ok {
		return snap.Funds, nil
	}

	dtos, err := s.source.FetchAllFunds(ctx)
	if err != nil {
		if snap, ok := s.cache.Funds(); ok {
			s.logger.Warn("serving stale fund list after fetch failure",
				"fetched_at", snap.FetchedAt,
				"funds", len(snap.Funds),
				"error", err)
			return snap.Funds, nil
		}
		return nil, err
	}

	snap := s.cache.PutFunds(fund.SummariesFromDTOs(dtos))
	s.logger.Debug("fund list refreshed", "funds", len(snap.Funds))
	return snap.Funds, nil
}

// fail logs a request that could not be served and converts the error into
// a user-facing Result.
func fail[T any](logger *slog.Logger, op string, err error, attrs ...any) resource.Result[T] {
	kind := classify(err)
	logger.Error("fund request failed",
		append([]any{"op", op, "kind", kind.String(), "error", err}, attrs...)...)
	return resource.Failure[T](kind)
}

// classify maps a fetch error onto the user-facing taxonomy.
func classify(err error) resource.Kind {
	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		switch {
		case fe.Unreachable():
			return resource.KindUnreachable
		case fe.Responded():
			return resource.KindServerError
		}
	}
	return resource.KindUnexpected
}

// stream runs work in its own goroutine and returns a channel that yields
// Loading followed by work's Result. The buffer holds both, so the
// goroutine never blocks on a caller that stopped listening.
func stream[T any](ctx context.Context, work func(ctx context.Context) resource.Result[T]) <-chan resource.Result[T] {
	ch := make(chan resource.Result[T], 2)
	go func() {
		defer close(ch)
		ch <- resource.Loading[T]()
		ch <- work(ctx)
	}()
	return ch
}
