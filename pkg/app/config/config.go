package config

import "github.com/kelseyhightower/envconfig"

// Config is read from APEX_-prefixed environment variables. The Stripe
// secret key never leaves the server process.
type Config struct {
	HTTPAddr        string `envconfig:"HTTP_ADDR" default:":8080"`
	CatalogPath     string `envconfig:"CATALOG_PATH" default:"data/products.json"`
	Currency        string `envconfig:"CURRENCY" default:"EUR"`
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeAPIURL    string `envconfig:"STRIPE_API_URL" default:"https://api.stripe.com"`
	PublicOrigin    string `envconfig:"PUBLIC_ORIGIN" default:"http://localhost:8080"`
	SuccessURL      string `envconfig:"SUCCESS_URL"`
	CancelURL       string `envconfig:"CANCEL_URL"`
	LogFile         string `envconfig:"LOG_FILE"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("apex", &c)
	return c, err
}
