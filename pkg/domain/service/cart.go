package service

import (
	"sync"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// CartService holds the authoritative in-memory cart. Every mutation is
// dispatched synchronously so the display layer can re-render right away.
type CartService interface {
	Add(product *model.Product, quantity int)
	SetQuantity(productID string, quantity int)
	Clear()
	Items() []model.CartEntry
	Subtotal() (model.Money, error)
}

func NewCartService(dispatcher EventDispatcher) CartService {
	return &cartService{dispatcher: dispatcher}
}

type cartService struct {
	dispatcher EventDispatcher

	mu      sync.Mutex
	entries []model.CartEntry
}

func (s *cartService) Add(product *model.Product, quantity int) {
	if product == nil {
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One entry per product identifier: merge instead of appending.
	for i := range s.entries {
		if s.entries[i].Product.ID == product.ID {
			s.entries[i].Quantity += quantity
			_ = s.dispatcher.Dispatch(model.CartItemAdded{
				ProductID:   product.ID,
				Quantity:    quantity,
				NewQuantity: s.entries[i].Quantity,
			})
			return
		}
	}

	s.entries = append(s.entries, model.CartEntry{Product: product, Quantity: quantity})
	_ = s.dispatcher.Dispatch(model.CartItemAdded{
		ProductID:   product.ID,
		Quantity:    quantity,
		NewQuantity: quantity,
	})
}

func (s *cartService) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ID != productID {
			continue
		}

		if quantity <= 0 {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			_ = s.dispatcher.Dispatch(model.CartItemRemoved{ProductID: productID})
			return
		}

		old := s.entries[i].Quantity
		if old == quantity {
			return
		}
		s.entries[i].Quantity = quantity
		_ = s.dispatcher.Dispatch(model.CartItemQuantityChanged{
			ProductID:   productID,
			OldQuantity: old,
			NewQuantity: quantity,
		})
		return
	}
	// Unknown identifier is a silent no-op; a removed entry never reappears.
}

func (s *cartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.entries)
	s.entries = nil
	_ = s.dispatcher.Dispatch(model.CartCleared{RemovedEntries: removed})
}

func (s *cartService) Items() []model.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.CartEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

func (s *cartService) Subtotal() (model.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return subtotal(s.entries)
}

func subtotal(entries []model.CartEntry) (model.Money, error) {
	var total model.Money
	for _, entry := range entries {
		if total.Currency == "" {
			total.Currency = entry.Product.Currency
		} else if total.Currency != entry.Product.Currency {
			return model.Money{}, model.ErrMixedCurrency
		}
		total.AmountCents += entry.LineTotalCents()
	}
	return total, nil
}
