package handlers

import (
	"errors"
	"io"
	"net/http"

	"dakota/services/payments"
	"dakota/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	Processor *payments.WebhookProcessor
}

func NewWebhookHandler(processor *payments.WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{Processor: processor}
}

// StripeWebhookHandler verifies the raw body against Stripe-Signature and
// acknowledges every verified event.
func (h *WebhookHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.AbortWithError(c, http.StatusBadRequest, "Webhook Error: "+err.Error())
		return
	}

	res, err := h.Processor.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	var verr *payments.VerificationError
	switch {
	case errors.Is(err, payments.ErrWebhookNotConfigured):
		utils.AbortWithError(c, http.StatusInternalServerError, "Server configuration error")
		return
	case errors.As(err, &verr):
		utils.AbortWithError(c, http.StatusBadRequest, "Webhook Error: "+verr.Error())
		return
	case err != nil:
		fields := []zap.Field{zap.Error(err)}
		if res != nil {
			fields = append(fields, zap.String("event_id", res.EventID))
		}
		logger.Error("Webhook dispatch failed", fields...)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
