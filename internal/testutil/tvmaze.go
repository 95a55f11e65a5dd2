// Package testutil holds shared fixtures and a fake TVMaze API for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// ShowsJSON is a minimal /shows payload with two shows.
const ShowsJSON = `[
	{"id":1,"name":"Firefly","summary":"<p>Space <b>western</b>.</p>","genres":["Drama","Science-Fiction"],"status":"Ended","rating":{"average":8.9},"runtime":60,"image":{"medium":"https://static.tvmaze.com/firefly.jpg"}},
	{"id":2,"name":"Breaking Bad","summary":"<p>A chemistry teacher.</p>","genres":["Crime","Thriller"],"status":"Ended","rating":{"average":null},"runtime":null,"image":null}
]`

// FireflyEpisodesJSON is the /shows/1/episodes payload.
const FireflyEpisodesJSON = `[
	{"id":10,"name":"Serenity","season":1,"number":1,"summary":"pilot","image":{"medium":"https://static.tvmaze.com/ep10.jpg"}}
]`

// BreakingBadEpisodesJSON is the /shows/2/episodes payload.
const BreakingBadEpisodesJSON = `[
	{"id":20,"name":"Pilot","season":1,"number":1,"summary":"<p>Walter White is diagnosed.</p>","image":null},
	{"id":21,"name":"Cat's in the Bag...","season":1,"number":2,"summary":"<p>Walt and Jesse clean up.</p>","image":null},
	{"id":22,"name":"Seven Thirty-Seven","season":2,"number":1,"summary":"<p>Walt and Jesse face Tuco.</p>","image":null}
]`

// FakeTVMaze serves the fixtures above and counts requests per path.
type FakeTVMaze struct {
	*httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	failures atomic.Int32
}

// NewFakeTVMaze starts a fake API and registers its shutdown with t.Cleanup.
func NewFakeTVMaze(t *testing.T) *FakeTVMaze {
	t.Helper()
	f := &FakeTVMaze{hits: make(map[string]int)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// FailNext makes the next n requests answer 500.
func (f *FakeTVMaze) FailNext(n int) {
	f.failures.Store(int32(n))
}

// Hits returns how many requests reached path.
func (f *FakeTVMaze) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *FakeTVMaze) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()

	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	body, ok := route(r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func route(path string) (string, bool) {
	if path == "/shows" {
		return ShowsJSON, true
	}
	rest, ok := strings.CutPrefix(path, "/shows/")
	if !ok {
		return "", false
	}
	idPart, ok := strings.CutSuffix(rest, "/episodes")
	if !ok {
		return "", false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return "", false
	}
	switch id {
	case 1:
		return FireflyEpisodesJSON, true
	case 2:
		return BreakingBadEpisodesJSON, true
	}
	return "", false
}

// EpisodesPath returns the API path of a show's episode list.
func EpisodesPath(showID int) string {
	return fmt.Sprintf("/shows/%d/episodes", showID)
}
