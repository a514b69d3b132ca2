package catalog

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
)

type productJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
}

// Catalog is the static product collection, loaded wholesale at startup
// and immutable afterwards.
type Catalog struct {
	products []*model.Product
	byID     map[string]*model.Product
}

// Load reads the product file and converts decimal prices to minor units.
// Products without a currency get the catalog-wide default.
func Load(filePath, defaultCurrency string) (*Catalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}

	var records []productJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "parse catalog file")
	}

	c := &Catalog{
		products: make([]*model.Product, 0, len(records)),
		byID:     make(map[string]*model.Product, len(records)),
	}

	for _, rec := range records {
		if rec.ID == "" {
			return nil, errors.Errorf("product %q has no identifier", rec.Title)
		}
		if _, exists := c.byID[rec.ID]; exists {
			return nil, errors.Wrap(model.ErrDuplicateProduct, rec.ID)
		}
		if rec.Price < 0 {
			return nil, errors.Wrap(model.ErrNegativePrice, rec.ID)
		}

		currency := rec.Currency
		if currency == "" {
			currency = defaultCurrency
		}

		product := &model.Product{
			ID:          rec.ID,
			Title:       rec.Title,
			PriceCents:  model.MinorUnits(rec.Price),
			Currency:    currency,
			Category:    rec.Category,
			Description: rec.Description,
			Image:       rec.Image,
			Sizes:       rec.Sizes,
			Colors:      rec.Colors,
		}

		c.products = append(c.products, product)
		c.byID[product.ID] = product
	}

	return c, nil
}

func (c *Catalog) Find(id string) (*model.Product, error) {
	product, ok := c.byID[id]
	if !ok {
		return nil, errors.Wrap(model.ErrProductNotFound, id)
	}
	return product, nil
}

func (c *Catalog) List() []*model.Product {
	out := make([]*model.Product, len(c.products))
	copy(out, c.products)
	return out
}
