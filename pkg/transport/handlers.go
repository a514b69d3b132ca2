package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/service"
)

// Defaults are applied when a request leaves the corresponding field empty.
type Defaults struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type Handler struct {
	catalog  model.CatalogRepository
	cart     service.CartService
	checkout service.CheckoutService
	defaults Defaults
}

func Router(catalog model.CatalogRepository, cart service.CartService, checkout service.CheckoutService, defaults Defaults) http.Handler {
	h := &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		defaults: defaults,
	}

	r := mux.NewRouter()
	// Kept byte-compatible with the old serverless endpoint so existing
	// storefront clients keep working. Non-POST verbs get 405 from mux.
	r.HandleFunc("/api/create-checkout-session", h.createCheckoutSession).Methods(http.MethodPost)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/{ID}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{ID}", h.setCartItemQuantity).Methods(http.MethodPut)
	s.HandleFunc("/checkout", h.checkoutCart).Methods(http.MethodPost)

	return logMiddleware(r)
}

type checkoutItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	Qty      int     `json:"qty"`
}

type checkoutRequest struct {
	Items      []checkoutItem `json:"items"`
	SuccessURL string         `json:"success_url,omitempty"`
	CancelURL  string         `json:"cancel_url,omitempty"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := make([]model.CartEntry, 0, len(req.Items))
	for _, item := range req.Items {
		currency := item.Currency
		if currency == "" {
			currency = h.defaults.Currency
		}
		entries = append(entries, model.CartEntry{
			Product: &model.Product{
				ID:         item.Title,
				Title:      item.Title,
				PriceCents: model.MinorUnits(item.Price),
				Currency:   currency,
			},
			Quantity: item.Qty,
		})
	}

	redirectURL, err := h.checkout.CheckoutItems(r.Context(), entries, h.sessionOptions(req.SuccessURL, req.CancelURL))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: redirectURL})
}

func (h *Handler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SuccessURL string `json:"success_url,omitempty"`
		CancelURL  string `json:"cancel_url,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	redirectURL, err := h.checkout.Checkout(r.Context(), h.sessionOptions(req.SuccessURL, req.CancelURL))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: redirectURL})
}

func (h *Handler) sessionOptions(successURL, cancelURL string) model.SessionOptions {
	if successURL == "" {
		successURL = h.defaults.SuccessURL
	}
	if cancelURL == "" {
		cancelURL = h.defaults.CancelURL
	}
	return model.SessionOptions{SuccessURL: successURL, CancelURL: cancelURL}
}

type productView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.List()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Find(mux.Vars(r)["ID"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(product))
}

type cartEntryView struct {
	ProductID      string `json:"product_id"`
	Title          string `json:"title"`
	PriceCents     int64  `json:"price_cents"`
	Currency       string `json:"currency"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type cartView struct {
	Items         []cartEntryView `json:"items"`
	SubtotalCents int64           `json:"subtotal_cents"`
	Currency      string          `json:"currency,omitempty"`
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Find(req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.cart.Add(product, req.Qty)
	h.writeCart(w)
}

func (h *Handler) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.cart.SetQuantity(mux.Vars(r)["ID"], req.Qty)
	h.writeCart(w)
}

func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.cart.Clear()
	h.writeCart(w)
}

func (h *Handler) writeCart(w http.ResponseWriter) {
	entries := h.cart.Items()
	total, err := h.cart.Subtotal()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	view := cartView{
		Items:         make([]cartEntryView, 0, len(entries)),
		SubtotalCents: total.AmountCents,
		Currency:      total.Currency,
	}
	for _, entry := range entries {
		view.Items = append(view.Items, cartEntryView{
			ProductID:      entry.Product.ID,
			Title:          entry.Product.Title,
			PriceCents:     entry.Product.PriceCents,
			Currency:       entry.Product.Currency,
			Quantity:       entry.Quantity,
			LineTotalCents: entry.LineTotalCents(),
		})
	}
	writeJSON(w, http.StatusOK, view)
}

func toProductView(p *model.Product) productView {
	return productView{
		ID:          p.ID,
		Title:       p.Title,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFromError(err), err.Error())
}

func statusFromError(err error) int {
	switch errors.Cause(err) {
	case model.ErrEmptyCart, model.ErrMixedCurrency, service.ErrInvalidQuantity:
		return http.StatusBadRequest
	case model.ErrProductNotFound:
		return http.StatusNotFound
	case model.ErrCheckoutInFlight:
		return http.StatusConflict
	case model.ErrCheckoutFailed:
		return http.StatusBadGateway
	case model.ErrCheckoutUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
