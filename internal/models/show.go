package models

// Image holds the poster URLs TVMaze attaches to shows and episodes
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Rating is the aggregated user rating of a show. Average is nil when TVMaze has no rating yet.
type Rating struct {
	Average *float64 `json:"average"`
}

// Show represents a TV series record from the upstream catalog
type Show struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Summary string   `json:"summary"` // HTML fragment as provided by the API
	Image   *Image   `json:"image"`
	Genres  []string `json:"genres"`
	Status  string   `json:"status"`
	Rating  Rating   `json:"rating"`
	Runtime *int     `json:"runtime"` // Minutes, nil when unknown
}

// PosterURL returns the medium poster URL, or an empty string when the show has no image
func (s Show) PosterURL() string {
	if s.Image == nil {
		return ""
	}
	return s.Image.Medium
}
