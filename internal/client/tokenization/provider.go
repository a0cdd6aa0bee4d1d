// Package tokenization turns raw card data into an opaque encrypted token so
// card numbers never reach the storefront backend in clear text.
package tokenization

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cyphera/storefront/internal/mask"
	"github.com/cyphera/storefront/internal/validation"
)

// ErrorCode identifies a card field rejected by the provider
type ErrorCode string

const (
	InvalidNumber          ErrorCode = "INVALID_NUMBER"
	InvalidSecurityCode    ErrorCode = "INVALID_SECURITY_CODE"
	InvalidExpirationMonth ErrorCode = "INVALID_EXPIRATION_MONTH"
	InvalidExpirationYear  ErrorCode = "INVALID_EXPIRATION_YEAR"
	InvalidPublicKey       ErrorCode = "INVALID_PUBLIC_KEY"
	InvalidHolder          ErrorCode = "INVALID_HOLDER"
)

// ErrSDKNotLoaded is returned when the provider is used before Load
var ErrSDKNotLoaded = errors.New("tokenization sdk not loaded")

// Card is the raw card data typed by the buyer. ExpYear has four digits.
type Card struct {
	Number       string
	Holder       string
	ExpMonth     string
	ExpYear      string
	SecurityCode string
}

// CardError is a typed validation failure
type CardError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Encrypted is the provider outcome: a token or the list of rejected fields
type Encrypted struct {
	EncryptedCard string
	Errors        []CardError
}

// HasErrors reports whether the card was rejected
func (e Encrypted) HasErrors() bool {
	return len(e.Errors) > 0
}

// Provider encrypts cards. The returned error is reserved for provider
// failures; rejected card data is reported through Encrypted.Errors.
type Provider interface {
	EncryptCard(ctx context.Context, card Card) (Encrypted, error)
}

// RSAProvider encrypts cards with the merchant's RSA public key using
// PKCS#1 v1.5, the format accepted by the payment gateway.
type RSAProvider struct {
	publicKey *rsa.PublicKey
	now       func() time.Time
	random    io.Reader
}

// RSAOption customizes an RSAProvider
type RSAOption func(*RSAProvider)

// WithClock overrides the time source used for expiry checks and the token timestamp
func WithClock(now func() time.Time) RSAOption {
	return func(p *RSAProvider) { p.now = now }
}

// WithRandom overrides the entropy source used for padding
func WithRandom(r io.Reader) RSAOption {
	return func(p *RSAProvider) { p.random = r }
}

// NewRSAProvider builds a provider from a PEM or base64 DER public key. An
// unusable key does not fail construction; every card is then rejected with
// INVALID_PUBLIC_KEY, mirroring the gateway SDK.
func NewRSAProvider(publicKey string, options ...RSAOption) *RSAProvider {
	p := &RSAProvider{now: time.Now, random: rand.Reader}
	for _, opt := range options {
		opt(p)
	}
	p.publicKey, _ = ParsePublicKey(publicKey)
	return p
}

// ParsePublicKey accepts a PEM block or the bare base64 DER body
func ParsePublicKey(key string) (*rsa.PublicKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("empty public key")
	}

	var der []byte
	if block, _ := pem.Decode([]byte(key)); block != nil {
		der = block.Bytes
	} else {
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("public key is neither PEM nor base64: %w", err)
		}
		der = decoded
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}
	return rsaKey, nil
}

// EncryptCard validates the card and returns its encrypted form
func (p *RSAProvider) EncryptCard(ctx context.Context, card Card) (Encrypted, error) {
	if err := ctx.Err(); err != nil {
		return Encrypted{}, err
	}

	if errs := p.validate(card); len(errs) > 0 {
		return Encrypted{Errors: errs}, nil
	}

	plain := strings.Join([]string{
		mask.Digits(card.Number),
		card.SecurityCode,
		padMonth(card.ExpMonth),
		card.ExpYear,
		strings.TrimSpace(card.Holder),
		strconv.FormatInt(p.now().UnixMilli(), 10),
	}, ";")

	cipher, err := rsa.EncryptPKCS1v15(p.random, p.publicKey, []byte(plain))
	if err != nil {
		return Encrypted{}, fmt.Errorf("failed to encrypt card: %w", err)
	}
	return Encrypted{EncryptedCard: base64.StdEncoding.EncodeToString(cipher)}, nil
}

func (p *RSAProvider) validate(card Card) []CardError {
	var errs []CardError
	add := func(code ErrorCode, msg string) {
		errs = append(errs, CardError{Code: code, Message: msg})
	}

	if p.publicKey == nil {
		add(InvalidPublicKey, "invalid public key")
	}
	if !validation.IsCardNumber(card.Number) {
		add(InvalidNumber, "invalid card number")
	}
	if !validation.IsSecurityCode(card.SecurityCode) {
		add(InvalidSecurityCode, "invalid security code")
	}

	month, err := strconv.Atoi(card.ExpMonth)
	if err != nil || month < 1 || month > 12 {
		add(InvalidExpirationMonth, "invalid expiration month")
	}

	year, err := strconv.Atoi(card.ExpYear)
	if err != nil || len(card.ExpYear) != 4 || year < p.now().Year() {
		add(InvalidExpirationYear, "invalid expiration year")
	}

	if strings.TrimSpace(card.Holder) == "" || strings.ContainsAny(card.Holder, "0123456789;") {
		add(InvalidHolder, "invalid holder")
	}
	return errs
}

func padMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}
