package model

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product identifier in catalog")
	ErrNegativePrice    = errors.New("product price cannot be negative")
)

// Product is a catalog record. The catalog is loaded once at startup and
// never changes afterwards, so products are shared by pointer.
type Product struct {
	ID          string
	Title       string
	PriceCents  int64
	Currency    string
	Category    string
	Description string
	Image       string
	Sizes       []string
	Colors      []string
}

type CatalogRepository interface {
	Find(id string) (*Product, error)
	List() []*Product
}
