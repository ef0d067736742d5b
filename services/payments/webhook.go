package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dakota/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

var ErrWebhookNotConfigured = errors.New("payments: stripe webhook not configured")

// VerificationError wraps a rejected Stripe-Signature check.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string { return e.Err.Error() }
func (e *VerificationError) Unwrap() error { return e.Err }

// WebhookResult describes what happened to one verified event.
type WebhookResult struct {
	EventID   string
	Type      string
	Duplicate bool
	Handled   bool
	Stay      *models.ConfirmedStay
}

// --- WebhookProcessor ---
type WebhookProcessor struct {
	secretKey     string
	webhookSecret string
	ledger        EventLedger
	logger        *zap.Logger
}

func NewWebhookProcessor(secretKey, webhookSecret string, ledger EventLedger, logger *zap.Logger) *WebhookProcessor {
	if ledger == nil {
		ledger = NewMemoryLedger(DefaultEventTTL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookProcessor{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		ledger:        ledger,
		logger:        logger,
	}
}

// Process verifies payload against the Stripe-Signature header value and
// dispatches the event once per event id.
func (p *WebhookProcessor) Process(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if p.secretKey == "" || p.webhookSecret == "" {
		p.logger.Error("Stripe configuration missing")
		return nil, ErrWebhookNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		p.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, &VerificationError{Err: err}
	}

	result := &WebhookResult{EventID: event.ID, Type: string(event.Type)}

	first, err := p.ledger.MarkProcessed(ctx, event.ID)
	if err != nil {
		// Stripe retries unacknowledged events, so a ledger outage must not block delivery.
		p.logger.Warn("Webhook ledger unavailable, dispatching anyway",
			zap.String("event_id", event.ID), zap.Error(err))
	} else if !first {
		p.logger.Info("Duplicate webhook event ignored",
			zap.String("event_id", event.ID), zap.String("type", result.Type))
		result.Duplicate = true
		return result, nil
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		cs, err := decodeSession(event)
		if err != nil {
			return result, err
		}
		result.Handled = true
		result.Stay = p.handleCompleted(cs)
	case stripe.EventTypeCheckoutSessionExpired:
		cs, err := decodeSession(event)
		if err != nil {
			return result, err
		}
		result.Handled = true
		p.logger.Info("Checkout expired", zap.String("session_id", cs.ID))
	default:
		p.logger.Info("Unhandled event type", zap.String("type", result.Type))
	}
	return result, nil
}

func decodeSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var cs stripe.CheckoutSession
	if event.Data == nil {
		return nil, fmt.Errorf("event %s carries no data", event.ID)
	}
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("decoding checkout session from %s: %w", event.ID, err)
	}
	return &cs, nil
}

func (p *WebhookProcessor) handleCompleted(cs *stripe.CheckoutSession) *models.ConfirmedStay {
	p.logger.Info("Checkout completed",
		zap.String("session_id", cs.ID),
		zap.String("customer_email", cs.CustomerEmail),
		zap.Int64("amount", cs.AmountTotal),
		zap.Any("metadata", cs.Metadata),
	)

	start, end := cs.Metadata["start_date"], cs.Metadata["end_date"]
	if start == "" || end == "" {
		return nil
	}

	stay := &models.ConfirmedStay{
		SessionID: cs.ID,
		StartDate: start,
		EndDate:   end,
		Guests:    cs.Metadata["guests"],
		Email:     cs.CustomerEmail,
	}
	if cs.PaymentIntent != nil {
		stay.PaymentIntent = cs.PaymentIntent.ID
	}

	p.logger.Info("Booking confirmed",
		zap.String("start_date", stay.StartDate),
		zap.String("end_date", stay.EndDate),
		zap.String("guests", stay.Guests),
		zap.String("email", stay.Email),
		zap.String("payment_intent", stay.PaymentIntent),
	)
	return stay
}
