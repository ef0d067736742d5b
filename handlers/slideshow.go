package handlers

import (
	"net/http"

	"dakota/models"

	"github.com/gin-gonic/gin"
)

type SlideshowHandler struct {
	Manifest models.SlideshowManifest
}

func NewSlideshowHandler(manifest models.SlideshowManifest) *SlideshowHandler {
	if manifest.Slides == nil {
		manifest.Slides = []models.Slide{}
	}
	return &SlideshowHandler{Manifest: manifest}
}

// ManifestHandler returns the slides and carousel options.
func (h *SlideshowHandler) ManifestHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Manifest)
}
