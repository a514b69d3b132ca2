package model

import "errors"

var ErrMixedCurrency = errors.New("cart entries span multiple currencies")

// CartEntry pairs a product with a quantity. The cart holds at most one
// entry per product identifier; quantities are always >= 1.
type CartEntry struct {
	Product  *Product
	Quantity int
}

func (e CartEntry) LineTotalCents() int64 {
	return e.Product.PriceCents * int64(e.Quantity)
}
