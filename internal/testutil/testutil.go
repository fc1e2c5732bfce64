package testutil

import (
	"context"
	"sync/atomic"

	"fundexplorer/internal/fetcher"
)

// MockSource is a mock implementation of the fetcher.DataSource interface for testing.
// It counts calls so tests can assert how often the upstream was hit.
type MockSource struct {
	FetchAllFundsFunc   func(ctx context.Context) ([]fetcher.SchemeDTO, error)
	FetchFundDetailFunc func(ctx context.Context, schemeCode string) (*fetcher.DetailDTO, error)

	allCalls    atomic.Int64
	detailCalls atomic.Int64
}

// FetchAllFunds implements the fetcher.DataSource interface
func (m *MockSource) FetchAllFunds(ctx context.Context) ([]fetcher.SchemeDTO, error) {
	m.allCalls.Add(1)
	if m.FetchAllFundsFunc != nil {
		return m.FetchAllFundsFunc(ctx)
	}
	return nil, nil
}

// FetchFundDetail implements the fetcher.DataSource interface
func (m *MockSource) FetchFundDetail(ctx context.Context, schemeCode string) (*fetcher.DetailDTO, error) {
	m.detailCalls.Add(1)
	if m.FetchFundDetailFunc != nil {
		return m.FetchFundDetailFunc(ctx, schemeCode)
	}
	return nil, fetcher.NewValidationError("no detail configured")
}

// AllFundsCalls returns how many times FetchAllFunds was called.
func (m *MockSource) AllFundsCalls() int {
	return int(m.allCalls.Load())
}

// DetailCalls returns how many times FetchFundDetail was called.
func (m *MockSource) DetailCalls() int {
	return int(m.detailCalls.Load())
}

// Schemes builds a listing from alternating code, name pairs.
func Schemes(codeNamePairs ...string) []fetcher.SchemeDTO {
	out := make([]fetcher.SchemeDTO, 0, len(codeNamePairs)/2)
	for i := 0; i+1 < len(codeNamePairs); i += 2 {
		out = append(out, fetcher.SchemeDTO{
			SchemeCode: fetcher.Code(codeNamePairs[i]),
			SchemeName: codeNamePairs[i+1],
		})
	}
	return out
}

// NewMockSource creates a simple mock whose listing returns funds and err
func NewMockSource(funds []fetcher.SchemeDTO, err error) *MockSource {
	return &MockSource{
		FetchAllFundsFunc: func(ctx context.Context) ([]fetcher.SchemeDTO, error) {
			return funds, err
		},
	}
}

// NewDetail builds a detail payload with the given NAV entries as date, nav pairs.
func NewDetail(code, name string, dateNavPairs ...string) *fetcher.DetailDTO {
	d := &fetcher.DetailDTO{
		Meta: fetcher.MetaDTO{
			SchemeCode: fetcher.Code(code),
			SchemeName: name,
		},
		Status: "SUCCESS",
	}
	for i := 0; i+1 < len(dateNavPairs); i += 2 {
		d.Data = append(d.Data, fetcher.NavDTO{Date: dateNavPairs[i], NAV: dateNavPairs[i+1]})
	}
	return d
}
