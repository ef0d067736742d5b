package models

// --- CheckoutRequest & CheckoutResult ---

// CheckoutRequest is what the chat assistant posts once a guest accepts a quote.
type CheckoutRequest struct {
	AmountCents   int64  `json:"amount_cents" binding:"required,gt=0"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Guests        int    `json:"guests" binding:"required,gt=0"`
	Description   string `json:"description,omitempty"`
	Currency      string `json:"currency,omitempty" binding:"omitempty,len=3"` // defaults to usd
}

// CheckoutResult carries the client secret the embedded checkout iframe mounts with.
type CheckoutResult struct {
	SessionID    string `json:"session_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// CheckoutStatus mirrors the fields of a Stripe checkout session the site reports back.
type CheckoutStatus struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	CustomerEmail string            `json:"customer_email"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// ConfirmedStay is logged when a completed checkout carries stay dates.
// Nothing is persisted.
type ConfirmedStay struct {
	SessionID     string `json:"session_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Guests        string `json:"guests"`
	Email         string `json:"email"`
	PaymentIntent string `json:"payment_intent,omitempty"`
}
