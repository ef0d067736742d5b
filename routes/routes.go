package routes

import (
	"net/http"
	"time"

	"dakota/handlers"
	"dakota/utils"
	"dakota/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSiteRoutes registers the hero page and its static assets.
func RegisterSiteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", web.GetAssets())
	r.GET("/", hb.HomeHandler)
}

// RegisterAPIRoutes registers the JSON endpoints used by the page and the chat widget.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/slideshow", hb.SlideshowHandler)
		api.GET("/config", hb.ConfigHandler)
		api.GET("/chatkit", hb.ChatKitHealthHandler)
		api.POST("/create-session", hb.CreateSessionHandler)
	}
}

// RegisterStripeRoutes sets up the embedded checkout proxy and the webhook.
func RegisterStripeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/checkout", hb.CreateCheckoutHandler)
	r.GET("/api/checkout/status", hb.CheckoutStatusHandler)
	r.POST("/api/stripe/webhook", hb.StripeWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Dakota Country Home",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	// Wrong methods on known paths answer 405 in the same JSON shape as other errors.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		utils.AbortWithError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.AbortWithError(c, http.StatusNotFound, "Not found")
	})

	RegisterSiteRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAPIRoutes(r, hb)
	RegisterStripeRoutes(r, hb)
}
