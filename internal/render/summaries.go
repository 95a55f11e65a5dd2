package render

import (
	"html/template"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/Belphemur/ShowShelf/internal/cache"
)

var (
	summaryMu    sync.RWMutex
	summaryCache cache.Cache
)

// SetSummaryCache installs the cache used to memoize sanitized summaries.
// A nil cache sanitizes on every render.
func SetSummaryCache(c cache.Cache) {
	summaryMu.Lock()
	defer summaryMu.Unlock()
	summaryCache = c
}

func summaryKey(fragment string) string {
	return "summary:" + strconv.FormatUint(xxhash.Sum64String(fragment), 16)
}

// sanitizeSummary is Sanitize backed by the summary cache. The show list is
// re-rendered on every page, so most summaries are served from the cache.
func sanitizeSummary(fragment string) template.HTML {
	summaryMu.RLock()
	c := summaryCache
	summaryMu.RUnlock()

	if c == nil || fragment == "" {
		return Sanitize(fragment)
	}

	key := summaryKey(fragment)
	if cached, ok := c.Get(key); ok {
		return template.HTML(cached)
	}
	clean := Sanitize(fragment)
	c.Set(key, []byte(clean))
	return clean
}
