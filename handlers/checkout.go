package handlers

import (
	"errors"
	"net/http"

	"dakota/models"
	"dakota/services/payments"
	"dakota/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	Gateway payments.CheckoutGateway
}

func NewCheckoutHandler(gateway payments.CheckoutGateway) *CheckoutHandler {
	return &CheckoutHandler{Gateway: gateway}
}

// CreateCheckoutHandler opens an embedded Stripe checkout for a quoted stay.
func (h *CheckoutHandler) CreateCheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	if req.EndDate <= req.StartDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": "end_date must be after start_date"})
		return
	}

	res, err := h.Gateway.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CheckoutStatusHandler reports the state of a checkout session.
func (h *CheckoutHandler) CheckoutStatusHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.AbortWithError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	status, err := h.Gateway.CheckoutStatus(c.Request.Context(), sessionID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func respondPaymentError(c *gin.Context, err error) {
	if errors.Is(err, payments.ErrStripeNotConfigured) {
		utils.AbortWithError(c, http.StatusInternalServerError, "Stripe not configured")
		return
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
		utils.AbortWithError(c, stripeErr.HTTPStatusCode, stripeErr.Msg)
		return
	}

	getLogger(c).Error("Stripe request failed", zap.Error(err))
	utils.AbortWithError(c, http.StatusBadGateway, "Payment provider unavailable")
}
