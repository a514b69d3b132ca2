package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/model"
)

const (
	DefaultAPIURL = "https://api.stripe.com"

	sessionsPath    = "/v1/checkout/sessions"
	maxResponseSize = 1 << 20
)

// Client creates hosted checkout sessions over the provider's REST API.
// The secret key stays server-side; it is only ever sent as a bearer token.
type Client struct {
	apiURL    string
	secretKey string
	origin    string
	httpc     *http.Client
}

func NewClient(apiURL, secretKey, origin string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:    strings.TrimSuffix(apiURL, "/"),
		secretKey: secretKey,
		origin:    strings.TrimSuffix(origin, "/"),
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}
}

type sessionResponse struct {
	URL string `json:"url"`
}

func (c *Client) CreateSession(ctx context.Context, lines []model.LineItem, opts model.SessionOptions) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Add("payment_method_types[]", "card")

	for i, line := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", strings.ToLower(line.Currency))
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmountCents, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
	}

	successURL := opts.SuccessURL
	if successURL == "" {
		successURL = c.origin + "/?success=1"
	}
	cancelURL := opts.CancelURL
	if cancelURL == "" {
		cancelURL = c.origin + "/?canceled=1"
	}
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+sessionsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.WithMessage(model.ErrCheckoutUnavailable, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", errors.WithMessage(model.ErrCheckoutUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", errors.WithMessage(model.ErrCheckoutUnavailable, err.Error())
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		var session sessionResponse
		if err := json.Unmarshal(body, &session); err != nil {
			return "", errors.WithMessage(model.ErrCheckoutUnavailable, "malformed session response")
		}
		if session.URL == "" {
			return "", errors.WithMessage(model.ErrCheckoutFailed, "session response carries no redirect url")
		}
		return session.URL, nil
	}

	if msg := decodeErrorMessage(body); msg != "" {
		return "", errors.WithMessage(model.ErrCheckoutFailed, msg)
	}
	return "", errors.WithMessagef(model.ErrCheckoutUnavailable, "unexpected status %d", resp.StatusCode)
}

// decodeErrorMessage accepts both the provider's nested error shape
// {"error":{"message":"..."}} and the flat {"error":"..."} variant.
func decodeErrorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat.Error
	}
	return ""
}
