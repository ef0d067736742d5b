package models

import "sort"

// Slide is one hero panel as configured for the site.
type Slide struct {
	Image     string `mapstructure:"image" json:"image"`
	Alt       string `mapstructure:"alt" json:"alt"`
	Title     string `mapstructure:"title" json:"title"`
	Caption   string `mapstructure:"caption" json:"caption,omitempty"`
	SortOrder int    `mapstructure:"sort_order" json:"sortOrder"`
}

// SlideshowManifest is everything a client needs to mount the hero carousel.
type SlideshowManifest struct {
	Slides         []Slide `json:"slides"`
	Autoplay       bool    `json:"autoplay"`
	IntervalMs     int     `json:"intervalMs"`
	SwipeThreshold float64 `json:"swipeThreshold"`
}

// OrderedSlides returns a copy of slides sorted by SortOrder, keeping the
// configured order for ties.
func OrderedSlides(slides []Slide) []Slide {
	out := make([]Slide, len(slides))
	copy(out, slides)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}
