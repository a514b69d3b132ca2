package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
)

var testLines = []model.LineItem{
	{Name: "Classic Hoodie", UnitAmountCents: 2700, Currency: "EUR", Quantity: 3},
	{Name: "Relaxed Joggers", UnitAmountCents: 4400, Currency: "EUR", Quantity: 1},
}

func TestCreateSession_Success(t *testing.T) {
	var gotForm map[string][]string
	var gotAuth, gotPath, gotMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cs_test_123", "url": "https://pay.example/session/abc"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	url, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/session/abc", url)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/checkout/sessions", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)

	assert.Equal(t, []string{"payment"}, gotForm["mode"])
	assert.Equal(t, []string{"card"}, gotForm["payment_method_types[]"])
	assert.Equal(t, []string{"eur"}, gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, []string{"Classic Hoodie"}, gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, []string{"2700"}, gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, []string{"3"}, gotForm["line_items[0][quantity]"])
	assert.Equal(t, []string{"4400"}, gotForm["line_items[1][price_data][unit_amount]"])

	// Callback targets fall back to the public origin.
	assert.Equal(t, []string{"https://shop.example/?success=1"}, gotForm["success_url"])
	assert.Equal(t, []string{"https://shop.example/?canceled=1"}, gotForm["cancel_url"])
}

func TestCreateSession_ExplicitCallbackTargets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "https://shop.example/thanks", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.example/cart", r.PostForm.Get("cancel_url"))
		w.Write([]byte(`{"url": "https://pay.example/session/abc"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{
		SuccessURL: "https://shop.example/thanks",
		CancelURL:  "https://shop.example/cart",
	})
	require.NoError(t, err)
}

func TestCreateSession_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutFailed)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCreateSession_FlatErrorShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "secret key not configured"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutFailed)
	assert.Contains(t, err.Error(), "secret key not configured")
}

func TestCreateSession_NoRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "cs_test_123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutFailed)
}

func TestCreateSession_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutUnavailable)
}

func TestCreateSession_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutUnavailable)
	assert.NotErrorIs(t, err, model.ErrCheckoutFailed)
}

func TestCreateSession_UnexpectedStatusWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", "https://shop.example")

	_, err := client.CreateSession(context.Background(), testLines, model.SessionOptions{})

	assert.ErrorIs(t, err, model.ErrCheckoutUnavailable)
}
