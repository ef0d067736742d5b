package handlers

import (
	"errors"
	"net/http"

	"dakota/services/chatkit"
	"dakota/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookie       = "chatkit_session_id"
	sessionCookieMaxAge = 60 * 60 * 24 * 30
)

// ChatKitSettings is what the health endpoint reports about the assistant.
type ChatKitSettings struct {
	HasOpenAIKey         bool
	Model                string
	StripePublishableKey string
}

type ChatKitHandler struct {
	Sessions chatkit.SessionCreator
	Settings ChatKitSettings
}

func NewChatKitHandler(sessions chatkit.SessionCreator, settings ChatKitSettings) *ChatKitHandler {
	return &ChatKitHandler{Sessions: sessions, Settings: settings}
}

// CreateSessionHandler exchanges the server key for a ChatKit client secret
// and pins the browser to a stable user id via cookie.
func (h *ChatKitHandler) CreateSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, err := c.Cookie(sessionCookie)
	if err != nil || userID == "" {
		userID = uuid.NewString()
	}

	session, err := h.Sessions.CreateSession(c.Request.Context(), userID)
	if err != nil {
		var apiErr *chatkit.APIError
		switch {
		case errors.Is(err, chatkit.ErrMissingAPIKey):
			logger.Error("OPENAI_API_KEY not configured")
			utils.AbortWithError(c, http.StatusInternalServerError, "Server not configured")
		case errors.Is(err, chatkit.ErrMissingWorkflow):
			logger.Error("CHATKIT_WORKFLOW_ID not configured")
			utils.AbortWithError(c, http.StatusInternalServerError, "Workflow not configured")
		case errors.As(err, &apiErr):
			message := apiErr.Message
			if message == "" {
				message = "Failed to create session"
			}
			utils.AbortWithError(c, apiErr.StatusCode, message)
		default:
			logger.Error("Session creation failed", zap.Error(err))
			utils.AbortWithError(c, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, userID, sessionCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"client_secret": session.ClientSecret})
}

// HealthHandler reports whether the assistant can be reached.
func (h *ChatKitHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                 "ok",
		"has_openai_key":         h.Settings.HasOpenAIKey,
		"model":                  h.Settings.Model,
		"stripe_publishable_key": h.Settings.StripePublishableKey,
	})
}
