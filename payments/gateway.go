// Package payments wraps the hosted checkout provider behind a narrow
// interface so the reconciliation flow can be exercised with a fake.
package payments

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=payments

import (
	"context"
	"errors"
)

// StatusPaid is the payment status the provider reports for a completed charge.
const StatusPaid = "paid"

var ErrNotConfigured = errors.New("checkout gateway not configured")

// SessionRequest describes a one-item hosted checkout.
type SessionRequest struct {
	ProductName   string
	Amount        int64 // minor units
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Session is the provider's authoritative view of a checkout.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	// TransactionID identifies the real-world charge; it is the ledger's
	// idempotency key.
	TransactionID string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

type CheckoutGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
