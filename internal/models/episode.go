package models

import "fmt"

// Episode represents a single episode of a show
type Episode struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Summary string `json:"summary"` // HTML fragment as provided by the API
	Image   *Image `json:"image"`
}

// Code returns the zero-padded season/episode code, e.g. "S01E05"
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// PosterURL returns the medium still URL, or an empty string when the episode has no image
func (e Episode) PosterURL() string {
	if e.Image == nil {
		return ""
	}
	return e.Image.Medium
}
