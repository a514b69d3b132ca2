package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
)

var ErrInvalidQuantity = errors.New("line quantity must be at least 1")

// CheckoutService converts a cart snapshot into a hosted checkout session
// request. One attempt per user action: while a request is outstanding any
// further call is rejected with ErrCheckoutInFlight, never duplicated.
type CheckoutService interface {
	Checkout(ctx context.Context, opts model.SessionOptions) (string, error)
	CheckoutItems(ctx context.Context, entries []model.CartEntry, opts model.SessionOptions) (string, error)
}

func NewCheckoutService(cart CartService, gateway model.CheckoutGateway, dispatcher EventDispatcher) CheckoutService {
	return &checkoutService{cart: cart, gateway: gateway, dispatcher: dispatcher}
}

type checkoutService struct {
	cart       CartService
	gateway    model.CheckoutGateway
	dispatcher EventDispatcher

	mu      sync.Mutex
	pending bool
}

func (s *checkoutService) Checkout(ctx context.Context, opts model.SessionOptions) (string, error) {
	return s.CheckoutItems(ctx, s.cart.Items(), opts)
}

func (s *checkoutService) CheckoutItems(ctx context.Context, entries []model.CartEntry, opts model.SessionOptions) (string, error) {
	if len(entries) == 0 {
		return "", model.ErrEmptyCart
	}

	lines, total, err := buildLines(entries)
	if err != nil {
		return "", err
	}

	if !s.begin() {
		return "", model.ErrCheckoutInFlight
	}
	defer s.finish()

	checkoutID := uuid.New()
	_ = s.dispatcher.Dispatch(model.CheckoutStarted{
		CheckoutID: checkoutID,
		Lines:      len(lines),
		TotalCents: total.AmountCents,
		Currency:   total.Currency,
	})

	redirectURL, err := s.gateway.CreateSession(ctx, lines, opts)
	if err != nil {
		_ = s.dispatcher.Dispatch(model.CheckoutRejected{CheckoutID: checkoutID, Reason: err.Error()})
		return "", err
	}

	_ = s.dispatcher.Dispatch(model.CheckoutSucceeded{CheckoutID: checkoutID, RedirectURL: redirectURL})
	return redirectURL, nil
}

func (s *checkoutService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

func (s *checkoutService) finish() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func buildLines(entries []model.CartEntry) ([]model.LineItem, model.Money, error) {
	total, err := subtotal(entries)
	if err != nil {
		return nil, model.Money{}, err
	}

	lines := make([]model.LineItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Quantity < 1 {
			return nil, model.Money{}, errors.Wrapf(ErrInvalidQuantity, "product %q", entry.Product.ID)
		}
		lines = append(lines, model.LineItem{
			Name:            entry.Product.Title,
			UnitAmountCents: entry.Product.PriceCents,
			Currency:        entry.Product.Currency,
			Quantity:        entry.Quantity,
		})
	}
	return lines, total, nil
}
