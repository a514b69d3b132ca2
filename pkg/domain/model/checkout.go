package model

import (
	"context"
	"errors"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCheckoutFailed      = errors.New("checkout rejected by payment provider")
	ErrCheckoutUnavailable = errors.New("checkout service unavailable")
	ErrCheckoutInFlight    = errors.New("checkout already in progress")
)

// LineItem is one line of a hosted checkout session request. Amounts are
// minor currency units, rounded per line before they get here.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Currency        string
	Quantity        int
}

type SessionOptions struct {
	SuccessURL string
	CancelURL  string
}

// CheckoutGateway creates a hosted checkout session with the external
// payment provider and returns the redirect URL for the buyer.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, lines []LineItem, opts SessionOptions) (string, error)
}
