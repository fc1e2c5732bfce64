package presenter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
)

// DetailState is the state of the single fund screen.
type DetailState struct {
	Code   string
	Range  fund.TimeRange
	Detail resource.Result[fund.Detail]
	// Window is the NAV history inside Range, oldest first.
	Window []fund.NavPoint
	// Stats is valid only when HasStats is set.
	Stats    fund.Stats
	HasStats bool
}

// NewDetailState returns the state of a scheme that has not loaded yet.
func NewDetailState(code string) DetailState {
	return DetailState{
		Code:   code,
		Range:  fund.OneMonth,
		Detail: resource.Loading[fund.Detail](),
	}
}

// DetailEvent is an input to ReduceDetail.
type DetailEvent interface {
	detailEvent()
}

// RangeSelected changes the time range the NAV view covers.
type RangeSelected struct{ Range fund.TimeRange }

// DetailLoaded carries one element of a detail stream.
type DetailLoaded struct {
	Result resource.Result[fund.Detail]
}

func (RangeSelected) detailEvent() {}
func (DetailLoaded) detailEvent()  {}

// ReduceDetail folds ev into state and re-derives the windowed NAV view
// relative to now.
func ReduceDetail(state DetailState, ev DetailEvent, now time.Time) DetailState {
	switch e := ev.(type) {
	case RangeSelected:
		state.Range = e.Range
	case DetailLoaded:
		state.Detail = e.Result
	}

	state.Window = nil
	state.Stats = fund.Stats{}
	state.HasStats = false
	if state.Detail.IsSuccess() {
		state.Window = fund.Window(state.Detail.Data.NavHistory, state.Range, now)
		state.Stats, state.HasStats = fund.ComputeStats(state.Window)
	}
	return state
}

// Detail drives the screen of one scheme.
type Detail struct {
	source  FundSource
	logger  *slog.Logger
	now     func() time.Time
	publish func(DetailState)

	publishMu sync.Mutex
	mu        sync.Mutex
	state     DetailState
}

// DetailOption configures a Detail controller.
type DetailOption func(*Detail)

// WithDetailLogger sets the logger used for data quality warnings.
func WithDetailLogger(l *slog.Logger) DetailOption {
	return func(d *Detail) {
		d.logger = l
	}
}

// WithDetailClock replaces time.Now as the reference for time ranges.
func WithDetailClock(now func() time.Time) DetailOption {
	return func(d *Detail) {
		d.now = now
	}
}

// NewDetail creates a controller for schemeCode. onChange, which may be nil,
// receives every new state.
func NewDetail(source FundSource, schemeCode string, onChange func(DetailState), opts ...DetailOption) *Detail {
	if onChange == nil {
		onChange = func(DetailState) {}
	}
	d := &Detail{
		source:  source,
		logger:  slog.Default(),
		now:     time.Now,
		publish: onChange,
		state:   NewDetailState(schemeCode),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current state.
func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load fetches the scheme and blocks until its stream ends. It returns the
// final state.
func (d *Detail) Load(ctx context.Context) DetailState {
	for r := range d.source.GetDetail(ctx, d.State().Code) {
		d.dispatch(DetailLoaded{Result: r})
	}
	return d.State()
}

// SelectRange switches the NAV view to tr.
func (d *Detail) SelectRange(tr fund.TimeRange) DetailState {
	return d.dispatch(RangeSelected{Range: tr})
}

func (d *Detail) dispatch(ev DetailEvent) DetailState {
	d.publishMu.Lock()
	defer d.publishMu.Unlock()

	d.mu.Lock()
	d.state = ReduceDetail(d.state, ev, d.now())
	s := d.state
	d.mu.Unlock()

	if s.Stats.Skipped > 0 {
		d.logger.Warn("skipped malformed NAV values",
			"scheme_code", s.Code,
			"range", s.Range.Label,
			"skipped", s.Stats.Skipped,
		)
	}

	d.publish(s)
	return s
}
