// Package filter narrows show and episode lists by a free-text search term.
//
// A record matches when the trimmed, case-folded term is empty, equals the
// record's decimal id, or is a substring of any searchable field. Fields are
// OR-ed together. Summaries are matched as raw HTML, tags included.
package filter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// Episodes returns the episodes matching term, in their original order.
// An empty term returns the input slice itself.
func Episodes(episodes []models.Episode, term string) []models.Episode {
	folder := cases.Fold()
	needle := normalize(folder, term)
	if needle == "" {
		return episodes
	}

	matched := make([]models.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if matches(folder, needle, ep.ID, ep.Name, ep.Summary) {
			matched = append(matched, ep)
		}
	}
	return matched
}

// Shows returns the shows matching term, in their original order. Genres are
// searched as one space-joined string.
func Shows(shows []models.Show, term string) []models.Show {
	folder := cases.Fold()
	needle := normalize(folder, term)
	if needle == "" {
		return shows
	}

	matched := make([]models.Show, 0, len(shows))
	for _, s := range shows {
		if matches(folder, needle, s.ID, s.Name, s.Summary, strings.Join(s.Genres, " ")) {
			matched = append(matched, s)
		}
	}
	return matched
}

// EpisodeByID finds an episode in list. A missing id is not an error; callers
// render an empty result.
func EpisodeByID(episodes []models.Episode, id int) (models.Episode, bool) {
	for _, ep := range episodes {
		if ep.ID == id {
			return ep, true
		}
	}
	return models.Episode{}, false
}

func normalize(folder cases.Caser, term string) string {
	return folder.String(strings.TrimSpace(term))
}

func matches(folder cases.Caser, needle string, id int, fields ...string) bool {
	if needle == strconv.Itoa(id) {
		return true
	}
	for _, f := range fields {
		if strings.Contains(folder.String(f), needle) {
			return true
		}
	}
	return false
}
