package view

import (
	"fmt"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// Kind identifies the top-level view being displayed
type Kind int

const (
	ShowsView Kind = iota
	EpisodesView
)

// String returns the string representation of the view
func (k Kind) String() string {
	switch k {
	case EpisodesView:
		return "episodes"
	default:
		return "shows"
	}
}

// TermSource records which input last wrote the episode search term
type TermSource int

const (
	TermNone TermSource = iota
	TermTyped
	TermSelected
)

// AllEpisodes is the selector value of the "Show All Episodes" sentinel
const AllEpisodes = "all"

// State is everything the user has chosen so far. It is only mutated by Controller actions.
type State struct {
	View           Kind
	ShowID         int // 0 when no show is selected
	SearchTerm     string
	TermSource     TermSource
	ShowSearchTerm string
	Message        string
}

// Snapshot is a State plus the lists derived from it, ready to be rendered.
type Snapshot struct {
	State

	ShowsLoaded bool
	Shows       []models.Show // filtered by ShowSearchTerm
	TotalShows  int
	AllShows    []models.Show // unfiltered, for the show selector

	Show        *models.Show     // selected show in the episodes view
	Episodes    []models.Episode // filtered by SearchTerm
	AllEpisodes []models.Episode // unfiltered, for the episode selector

	SelectedEpisode string // AllEpisodes or an episode id
	SearchInput     string // value echoed back into the free-text box
	EpisodeCount    string
	CountVisible    bool
	ShowCount       string
}

// EpisodeCountText formats the "Displaying X / Y episodes." line
func EpisodeCountText(shown, total int) string {
	return fmt.Sprintf("Displaying %d / %d episodes.", shown, total)
}

// ShowCountText formats the "Displaying X / Y shows." line
func ShowCountText(shown, total int) string {
	return fmt.Sprintf("Displaying %d / %d shows.", shown, total)
}
