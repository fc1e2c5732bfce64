package presenter

import (
	"context"
	"sync"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
)

// fakeSource records calls and answers with the configured functions
type fakeSource struct {
	mu        sync.Mutex
	topLimits []int
	queries   []string

	top    func(limit int) resource.Result[[]fund.Summary]
	search func(ctx context.Context, query string) resource.Result[[]fund.Summary]
	detail func(code string) resource.Result[fund.Detail]
}

func emit[T any](work func() resource.Result[T]) <-chan resource.Result[T] {
	ch := make(chan resource.Result[T], 2)
	go func() {
		defer close(ch)
		ch <- resource.Loading[T]()
		ch <- work()
	}()
	return ch
}

func (f *fakeSource) GetTop(ctx context.Context, limit int) <-chan resource.Result[[]fund.Summary] {
	f.mu.Lock()
	f.topLimits = append(f.topLimits, limit)
	f.mu.Unlock()
	return emit(func() resource.Result[[]fund.Summary] { return f.top(limit) })
}

func (f *fakeSource) Search(ctx context.Context, query string) <-chan resource.Result[[]fund.Summary] {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return emit(func() resource.Result[[]fund.Summary] { return f.search(ctx, query) })
}

func (f *fakeSource) GetDetail(ctx context.Context, code string) <-chan resource.Result[fund.Detail] {
	return emit(func() resource.Result[fund.Detail] { return f.detail(code) })
}

func (f *fakeSource) calls() (topLimits []int, queries []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.topLimits...), append([]string(nil), f.queries...)
}
