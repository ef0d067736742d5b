package handlers

import (
	"net/http"

	"dakota/models"
	"dakota/services/slideshow"

	"github.com/gin-gonic/gin"
)

// HeroPage is the data the index template renders.
type HeroPage struct {
	Title            string
	Slides           []models.Slide
	Autoplay         bool
	IntervalMs       int
	SwipeThreshold   float64
	ChatKitDomainKey string
	InitialProgress  string
}

type SiteHandler struct {
	Page HeroPage
}

func NewSiteHandler(manifest models.SlideshowManifest, chatKitDomainKey string) *SiteHandler {
	return &SiteHandler{Page: HeroPage{
		Title:            "Dakota Country Home",
		Slides:           manifest.Slides,
		Autoplay:         manifest.Autoplay,
		IntervalMs:       manifest.IntervalMs,
		SwipeThreshold:   manifest.SwipeThreshold,
		ChatKitDomainKey: chatKitDomainKey,
		InitialProgress:  slideshow.ProgressWidth(0, len(manifest.Slides)),
	}}
}

// HomeHandler renders the hero page. The engine must have the web templates loaded.
func (h *SiteHandler) HomeHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.Page)
}
