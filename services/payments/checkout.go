package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dakota/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

const (
	DefaultCurrency    = "usd"
	lineItemName       = "Dakota Country Home Stay"
	defaultDescription = "Vacation rental booking"
)

var ErrStripeNotConfigured = errors.New("payments: stripe not configured")

// --- Interfaces ---
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResult, error)
	CheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error)
}

// --- CheckoutGateway Implementation ---
type StripeCheckout struct {
	sessions   *session.Client
	siteDomain string
	logger     *zap.Logger
}

// --- NewStripeCheckout Constructor ---
// A nil backend uses the live Stripe API.
func NewStripeCheckout(secretKey, siteDomain string, backend stripe.Backend, logger *zap.Logger) *StripeCheckout {
	if logger == nil {
		logger = zap.NewNop()
	}
	sc := &StripeCheckout{
		siteDomain: strings.TrimRight(siteDomain, "/"),
		logger:     logger,
	}
	if secretKey != "" {
		if backend == nil {
			backend = stripe.GetBackend(stripe.APIBackend)
		}
		sc.sessions = &session.Client{B: backend, Key: secretKey}
	}
	return sc
}

// ReturnURL is where Stripe sends the guest after an embedded payment.
func (s *StripeCheckout) ReturnURL() string {
	return s.siteDomain + "?session_id={CHECKOUT_SESSION_ID}&status=complete"
}

// --- CreateCheckout Entry Point ---
func (s *StripeCheckout) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResult, error) {
	if s.sessions == nil {
		return nil, ErrStripeNotConfigured
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	description := req.Description
	if description == "" {
		description = defaultDescription
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		UIMode:        stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(lineItemName),
						Description: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		ReturnURL: stripe.String(s.ReturnURL()),
	}
	params.Context = ctx
	params.AddMetadata("start_date", req.StartDate)
	params.AddMetadata("end_date", req.EndDate)
	params.AddMetadata("guests", strconv.Itoa(req.Guests))

	cs, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", cs.ID),
		zap.Int64("amount_cents", req.AmountCents),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	return &models.CheckoutResult{
		SessionID:    cs.ID,
		ClientSecret: cs.ClientSecret,
		Status:       "created",
		AmountCents:  req.AmountCents,
		Currency:     currency,
	}, nil
}

// --- CheckoutStatus Lookup ---
func (s *StripeCheckout) CheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error) {
	if s.sessions == nil {
		return nil, ErrStripeNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	cs, err := s.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkout session %s: %w", sessionID, err)
	}

	metadata := cs.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &models.CheckoutStatus{
		SessionID:     cs.ID,
		Status:        string(cs.Status),
		PaymentStatus: string(cs.PaymentStatus),
		CustomerEmail: cs.CustomerEmail,
		AmountTotal:   cs.AmountTotal,
		Currency:      string(cs.Currency),
		Metadata:      metadata,
	}, nil
}
