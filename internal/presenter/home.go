package presenter

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
)

// DefaultHomeLimit is how many allow-listed funds the home screen shows
// when no query is active.
const DefaultHomeLimit = 100

// HomeState is the state of the fund list screen.
type HomeState struct {
	Query    string
	Category fund.Category
	Loading  bool
	// Funds is the last successfully loaded list, Visible the subset
	// matching Category.
	Funds   []fund.Summary
	Visible []fund.Summary
	// ErrKind is KindNone unless the last load failed.
	ErrKind resource.Kind
}

// Error returns the user facing message of the last failed load, or "".
func (s HomeState) Error() string {
	if s.ErrKind == resource.KindNone {
		return ""
	}
	return s.ErrKind.Message()
}

// NewHomeState returns the initial home state: no query, every category.
func NewHomeState() HomeState {
	return HomeState{Category: fund.CategoryAll, Funds: []fund.Summary{}, Visible: []fund.Summary{}}
}

// HomeEvent is an input to ReduceHome.
type HomeEvent interface {
	homeEvent()
}

// QueryChanged records a new search query.
type QueryChanged struct{ Query string }

// CategorySelected narrows the visible funds to one category.
type CategorySelected struct{ Category fund.Category }

// FundsLoaded carries one element of a listing stream.
type FundsLoaded struct {
	Result resource.Result[[]fund.Summary]
}

// Refresh marks the list as reloading.
type Refresh struct{}

func (QueryChanged) homeEvent()     {}
func (CategorySelected) homeEvent() {}
func (FundsLoaded) homeEvent()      {}
func (Refresh) homeEvent()          {}

// ReduceHome folds ev into state. A failed load keeps the previous funds
// visible alongside the error.
func ReduceHome(state HomeState, ev HomeEvent) HomeState {
	switch e := ev.(type) {
	case QueryChanged:
		state.Query = e.Query
	case CategorySelected:
		state.Category = e.Category
		state.Visible = visible(state.Funds, e.Category)
	case Refresh:
		state.Loading = true
	case FundsLoaded:
		switch e.Result.Status {
		case resource.StatusLoading:
			state.Loading = true
		case resource.StatusSuccess:
			state.Loading = false
			state.ErrKind = resource.KindNone
			state.Funds = e.Result.Data
			if state.Funds == nil {
				state.Funds = []fund.Summary{}
			}
			state.Visible = visible(state.Funds, state.Category)
		case resource.StatusError:
			state.Loading = false
			state.ErrKind = e.Result.Kind
		}
	}
	return state
}

func visible(funds []fund.Summary, c fund.Category) []fund.Summary {
	if c == fund.CategoryAll || c == "" {
		return funds
	}
	return fund.Filter(funds, c.Matches)
}

// FundSource is the slice of the fund service the screens read from.
type FundSource interface {
	GetTop(ctx context.Context, limit int) <-chan resource.Result[[]fund.Summary]
	Search(ctx context.Context, query string) <-chan resource.Result[[]fund.Summary]
	GetDetail(ctx context.Context, schemeCode string) <-chan resource.Result[fund.Detail]
}

// HomeConfig tunes a Home controller.
type HomeConfig struct {
	// TopLimit bounds the list shown without a query. Zero uses DefaultHomeLimit.
	TopLimit int
	// Debounce is the search quiet period. Zero uses DefaultDebounce.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Home drives the fund list screen.
type Home struct {
	source    FundSource
	limit     int
	debouncer *Debouncer
	logger    *slog.Logger
	publish   func(HomeState)

	// publishMu keeps subscriber calls in reduction order
	publishMu sync.Mutex
	mu        sync.Mutex
	state     HomeState
}

// NewHome creates a Home controller. onChange, which may be nil, receives
// every new state; it is called from background goroutines, one call at a time.
func NewHome(source FundSource, cfg HomeConfig, onChange func(HomeState)) *Home {
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = DefaultHomeLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if onChange == nil {
		onChange = func(HomeState) {}
	}
	return &Home{
		source:    source,
		limit:     cfg.TopLimit,
		debouncer: NewDebouncer(cfg.Debounce),
		logger:    cfg.Logger,
		publish:   onChange,
		state:     NewHomeState(),
	}
}

// State returns the current state.
func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Start loads the top funds.
func (h *Home) Start(ctx context.Context) {
	h.debouncer.Run(ctx, h.loadTop)
}

// SetQuery records query and, once it has been stable for the debounce
// period, searches for it. A blank query reloads the top funds.
func (h *Home) SetQuery(ctx context.Context, query string) {
	h.dispatch(QueryChanged{Query: query})

	if strings.TrimSpace(query) == "" {
		h.debouncer.Trigger(ctx, h.loadTop)
		return
	}
	h.debouncer.Trigger(ctx, func(ctx context.Context) {
		h.logger.Debug("searching funds", "query", query)
		h.consume(ctx, h.source.Search(ctx, query))
	})
}

// SelectCategory narrows the visible funds without reloading.
func (h *Home) SelectCategory(c fund.Category) {
	h.dispatch(CategorySelected{Category: c})
}

// Refresh reloads the top funds immediately, superseding a pending search.
func (h *Home) Refresh(ctx context.Context) {
	h.dispatch(Refresh{})
	h.debouncer.Run(ctx, h.loadTop)
}

// Close cancels any pending or running load.
func (h *Home) Close() {
	h.debouncer.Stop()
}

func (h *Home) loadTop(ctx context.Context) {
	h.consume(ctx, h.source.GetTop(ctx, h.limit))
}

// consume applies a listing stream until it ends or ctx is superseded
func (h *Home) consume(ctx context.Context, results <-chan resource.Result[[]fund.Summary]) {
	for r := range results {
		if ctx.Err() != nil {
			return
		}
		h.dispatch(FundsLoaded{Result: r})
	}
}

func (h *Home) dispatch(ev HomeEvent) {
	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	h.mu.Lock()
	h.state = ReduceHome(h.state, ev)
	s := h.state
	h.mu.Unlock()

	h.publish(s)
}
