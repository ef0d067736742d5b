// File: dakota/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	// Site endpoints
	HomeHandler      gin.HandlerFunc
	SlideshowHandler gin.HandlerFunc
	ConfigHandler    gin.HandlerFunc

	// ChatKit endpoints
	CreateSessionHandler gin.HandlerFunc
	ChatKitHealthHandler gin.HandlerFunc

	// Stripe endpoints
	CreateCheckoutHandler gin.HandlerFunc
	CheckoutStatusHandler gin.HandlerFunc
	StripeWebhookHandler  gin.HandlerFunc
}
