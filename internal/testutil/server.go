package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fundexplorer/internal/fetcher"
)

// FakeAPI serves the fund API endpoints (GET /mf and GET /mf/{code}) from
// memory. Unknown scheme codes get the empty payload the real API sends.
type FakeAPI struct {
	Server *httptest.Server

	funds   []fetcher.SchemeDTO
	details map[string]*fetcher.DetailDTO

	status      atomic.Int32
	listCalls   atomic.Int64
	detailCalls atomic.Int64
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB, funds []fetcher.SchemeDTO, details ...*fetcher.DetailDTO) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		funds:   funds,
		details: make(map[string]*fetcher.DetailDTO, len(details)),
	}
	for _, d := range details {
		api.details[d.Meta.SchemeCode.String()] = d
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /mf", func(w http.ResponseWriter, r *http.Request) {
		api.listCalls.Add(1)
		if api.fail(w) {
			return
		}
		writeJSON(w, api.funds)
	})
	mux.HandleFunc("GET /mf/{code}", func(w http.ResponseWriter, r *http.Request) {
		api.detailCalls.Add(1)
		if api.fail(w) {
			return
		}
		d, ok := api.details[r.PathValue("code")]
		if !ok {
			d = &fetcher.DetailDTO{Data: []fetcher.NavDTO{}, Status: "SUCCESS"}
		}
		writeJSON(w, d)
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Server.Close)

	return api
}

// URL returns the base URL of the server.
func (a *FakeAPI) URL() string {
	return a.Server.URL
}

// FailWith makes every following request answer with status. Zero restores
// normal responses.
func (a *FakeAPI) FailWith(status int) {
	a.status.Store(int32(status))
}

// ListCalls returns how many listing requests were served.
func (a *FakeAPI) ListCalls() int {
	return int(a.listCalls.Load())
}

// DetailCalls returns how many detail requests were served.
func (a *FakeAPI) DetailCalls() int {
	return int(a.detailCalls.Load())
}

func (a *FakeAPI) fail(w http.ResponseWriter) bool {
	status := int(a.status.Load())
	if status == 0 {
		return false
	}
	w.WriteHeader(status)
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
