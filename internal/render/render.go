// Package render turns catalog records and view snapshots into HTML.
// Every function is a pure function of its arguments.
package render

import (
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/view"
)

// AttributionURL is linked from every episode card
const AttributionURL = "https://tvmaze.com/"

// NotAvailable is displayed for a missing rating or runtime
const NotAvailable = "N/A"

var pageTemplate = template.Must(template.New("render").Funcs(template.FuncMap{
	"sanitize":     sanitizeSummary,
	"rating":       FormatRating,
	"runtime":      FormatRuntime,
	"genres":       FormatGenres,
	"episodeTitle": EpisodeTitle,
	"optionLabel":  OptionLabel,
	"itoa":         strconv.Itoa,
	"allEpisodes":  func() string { return view.AllEpisodes },
	"attribution":  func() string { return AttributionURL },
	"episodeSelector": func(episodes []models.Episode, selected string) selectorData {
		return selectorData{Episodes: episodes, Selected: selected}
	},
	"showSelector": func(shows []models.Show, showID int) showSelectorData {
		return showSelectorData{Shows: shows, Selected: showID}
	},
}).Parse(pageTpl))

type selectorData struct {
	Episodes []models.Episode
	Selected string
}

type showSelectorData struct {
	Shows    []models.Show
	Selected int
}

// ShowList writes one card per show
func ShowList(w io.Writer, shows []models.Show) error {
	return pageTemplate.ExecuteTemplate(w, "shows", shows)
}

// EpisodeList writes one card per episode, or a placeholder when there are none
func EpisodeList(w io.Writer, episodes []models.Episode) error {
	return pageTemplate.ExecuteTemplate(w, "episodes", episodes)
}

// EpisodeSelector writes the episode dropdown. The first option is always the
// "Show All Episodes" sentinel; selected is view.AllEpisodes or an episode id.
func EpisodeSelector(w io.Writer, episodes []models.Episode, selected string) error {
	return pageTemplate.ExecuteTemplate(w, "episodeSelect", selectorData{Episodes: episodes, Selected: selected})
}

// ShowSelector writes the show dropdown, with showID preselected when non-zero
func ShowSelector(w io.Writer, shows []models.Show, showID int) error {
	return pageTemplate.ExecuteTemplate(w, "showSelect", showSelectorData{Shows: shows, Selected: showID})
}

// Page writes a complete document for snap. Each page replaces the previous one entirely.
func Page(w io.Writer, snap view.Snapshot) error {
	return pageTemplate.ExecuteTemplate(w, "page", snap)
}

// EpisodeTitle returns the card heading, e.g. "Serenity S01E01"
func EpisodeTitle(ep models.Episode) string {
	return ep.Name + " " + ep.Code()
}

// OptionLabel returns the selector label, e.g. "S01E01 - Serenity"
func OptionLabel(ep models.Episode) string {
	return ep.Code() + " - " + ep.Name
}

// FormatRating returns the average rating, or N/A when TVMaze has none
func FormatRating(r models.Rating) string {
	if r.Average == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*r.Average, 'f', -1, 64)
}

// FormatRuntime returns the runtime in minutes, or N/A when unknown
func FormatRuntime(runtime *int) string {
	if runtime == nil {
		return NotAvailable
	}
	return strconv.Itoa(*runtime)
}

// FormatGenres joins genres with ", "
func FormatGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
