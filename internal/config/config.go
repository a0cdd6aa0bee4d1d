package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the storefront binaries
type Config struct {
	Stage    string
	LogLevel string

	Backend      BackendConfig
	Tokenization TokenizationConfig
	Cart         CartConfig
	Checkout     CheckoutConfig `yaml:"checkout"`

	FakeBackendPort string
}

// BackendConfig configures the no-code backend API client
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// TokenizationConfig configures the card tokenization provider
type TokenizationConfig struct {
	PublicKey string
}

// CartConfig configures the persisted cart snapshot
type CartConfig struct {
	SnapshotPath string
}

// CheckoutConfig holds the settings loaded from the optional YAML overlay
type CheckoutConfig struct {
	FreeShippingThreshold float64           `yaml:"free_shipping_threshold"`
	FocusDelay            time.Duration     `yaml:"focus_delay"`
	Redirects             RedirectConfig    `yaml:"redirects"`
	AddressErrorMessages  map[string]string `yaml:"address_error_messages"`
	GenericDeliveryError  string            `yaml:"generic_delivery_error"`
	PaymentFailureMessage string            `yaml:"payment_failure_message"`
}

// RedirectConfig holds the order confirmation landing paths per payment method
type RedirectConfig struct {
	Pix        string `yaml:"pix"`
	CreditCard string `yaml:"credit_card"`
}

type fileOverlay struct {
	Checkout CheckoutConfig `yaml:"checkout"`
}

// DefaultCheckoutConfig returns the checkout settings used when no overlay is present
func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		FreeShippingThreshold: constants.DefaultFreeShippingThreshold,
		FocusDelay:            constants.DefaultFocusDelay,
		Redirects: RedirectConfig{
			Pix:        constants.DefaultPixRedirect,
			CreditCard: constants.DefaultCreditCardRedirect,
		},
		AddressErrorMessages: map[string]string{
			constants.ErrorCodeNotFound:      constants.MsgAddressNotFound,
			constants.ErrorCodeBadRequest:    constants.MsgGenericDeliveryError,
			constants.ErrorCodeOutOfCoverage: constants.MsgGenericDeliveryError,
		},
		GenericDeliveryError:  constants.MsgGenericDeliveryError,
		PaymentFailureMessage: constants.MsgPaymentFailure,
	}
}

// Load reads .env (if present), environment variables and the optional YAML
// overlay named by STOREFRONT_CONFIG_FILE or the path argument.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}

	timeout, err := durationEnv("BACKEND_TIMEOUT", constants.DefaultBackendTimeout)
	if err != nil {
		return nil, err
	}
	retries, err := intEnv("BACKEND_MAX_RETRIES", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Stage:    getEnvWithDefault("STAGE", constants.LocalEnvironment),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL:    os.Getenv("BACKEND_BASE_URL"),
			Timeout:    timeout,
			MaxRetries: retries,
		},
		Tokenization: TokenizationConfig{
			PublicKey: os.Getenv("TOKENIZATION_PUBLIC_KEY"),
		},
		Cart: CartConfig{
			SnapshotPath: getEnvWithDefault("CART_SNAPSHOT_PATH", constants.DefaultCartSnapshotPath),
		},
		Checkout:        DefaultCheckoutConfig(),
		FakeBackendPort: getEnvWithDefault("FAKE_BACKEND_PORT", constants.DefaultFakeBackendPort),
	}

	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.applyOverlay(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applyOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	o := overlay.Checkout
	if o.FreeShippingThreshold > 0 {
		c.Checkout.FreeShippingThreshold = o.FreeShippingThreshold
	}
	if o.FocusDelay > 0 {
		c.Checkout.FocusDelay = o.FocusDelay
	}
	if o.Redirects.Pix != "" {
		c.Checkout.Redirects.Pix = o.Redirects.Pix
	}
	if o.Redirects.CreditCard != "" {
		c.Checkout.Redirects.CreditCard = o.Redirects.CreditCard
	}
	for code, msg := range o.AddressErrorMessages {
		c.Checkout.AddressErrorMessages[code] = msg
	}
	if o.GenericDeliveryError != "" {
		c.Checkout.GenericDeliveryError = o.GenericDeliveryError
	}
	if o.PaymentFailureMessage != "" {
		c.Checkout.PaymentFailureMessage = o.PaymentFailureMessage
	}

	logger.Info("Loaded checkout config overlay", zap.String("path", path))
	return nil
}

// IsValidStage reports whether stage is a known deployment environment
func IsValidStage(stage string) bool {
	switch stage {
	case constants.ProdEnvironment, constants.DevEnvironment, constants.TestEnvironment, constants.LocalEnvironment:
		return true
	default:
		return false
	}
}

// Validate checks the settings required to talk to the backend
func (c *Config) Validate() error {
	if !IsValidStage(c.Stage) {
		return fmt.Errorf("unknown STAGE %q", c.Stage)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.Backend.MaxRetries < 0 {
		return fmt.Errorf("BACKEND_MAX_RETRIES cannot be negative")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}
