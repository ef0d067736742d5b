package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	StripePublishableKey string
}

func NewConfigHandler(stripePublishableKey string) *ConfigHandler {
	return &ConfigHandler{StripePublishableKey: stripePublishableKey}
}

// PublicConfigHandler exposes the keys the browser may see. An unset
// publishable key is reported as null.
func (h *ConfigHandler) PublicConfigHandler(c *gin.Context) {
	c.Header("Cache-Control", "s-maxage=300")

	var key *string
	if h.StripePublishableKey != "" {
		key = &h.StripePublishableKey
	}
	c.JSON(http.StatusOK, gin.H{"stripePublishableKey": key})
}
