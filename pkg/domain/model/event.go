package model

import "github.com/google/uuid"

type CartItemAdded struct {
	ProductID   string
	Quantity    int
	NewQuantity int
}

func (e CartItemAdded) Type() string { return "CartItemAdded" }

type CartItemQuantityChanged struct {
	ProductID   string
	OldQuantity int
	NewQuantity int
}

func (e CartItemQuantityChanged) Type() string { return "CartItemQuantityChanged" }

type CartItemRemoved struct {
	ProductID string
}

func (e CartItemRemoved) Type() string { return "CartItemRemoved" }

type CartCleared struct {
	RemovedEntries int
}

func (e CartCleared) Type() string { return "CartCleared" }

type CheckoutStarted struct {
	CheckoutID uuid.UUID
	Lines      int
	TotalCents int64
	Currency   string
}

func (e CheckoutStarted) Type() string { return "CheckoutStarted" }

type CheckoutSucceeded struct {
	CheckoutID  uuid.UUID
	RedirectURL string
}

func (e CheckoutSucceeded) Type() string { return "CheckoutSucceeded" }

type CheckoutRejected struct {
	CheckoutID uuid.UUID
	Reason     string
}

func (e CheckoutRejected) Type() string { return "CheckoutRejected" }
