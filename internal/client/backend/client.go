package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	httpclient "github.com/cyphera/storefront/internal/client/http"
	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/cyphera/storefront/internal/mask"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// API is the storefront backend as seen by the checkout. Implementations never
// return errors: every failure is folded into the Result.
type API interface {
	GetCart(ctx context.Context) Result[Cart]
	LookupAddress(ctx context.Context, cep string, deliveryMode bool) Result[Address]
	CalculateFees(ctx context.Context, amount float64, cardBin string) Result[[]InstallmentOption]
	GetDeliveryOptions(ctx context.Context) Result[DeliveryOptions]
	GetSubsidy(ctx context.Context, cep string) Result[Subsidy]
	QuoteDelivery(ctx context.Context, req QuoteRequest) Result[Quotation]
	GetCoupon(ctx context.Context, req CouponRequest) Result[Coupon]
	ProcessPayment(ctx context.Context, method string, payload OrderPayload) Result[PaymentReceipt]
}

// Client talks to the backend over JSON/HTTPS
type Client struct {
	http   *httpclient.HTTPClient
	logger *zap.Logger
}

var _ API = (*Client)(nil)

// NewClient wraps an already configured HTTP client
func NewClient(httpClient *httpclient.HTTPClient) *Client {
	return &Client{
		http:   httpClient,
		logger: logger.Log,
	}
}

// NewClientFromConfig builds the HTTP client from backend settings.
// Retries stay off unless MaxRetries is positive.
func NewClientFromConfig(cfg config.BackendConfig, options ...httpclient.ClientOption) *Client {
	opts := []httpclient.ClientOption{
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithDefaultHeader("User-Agent", constants.UserAgent),
		httpclient.WithMiddleware(httpclient.CorrelationMiddleware()),
		httpclient.WithMiddleware(httpclient.LoggingMiddleware()),
	}
	if cfg.MaxRetries > 0 {
		retry := httpclient.DefaultRetryConfig()
		retry.MaxRetries = cfg.MaxRetries
		opts = append(opts, httpclient.WithRetryConfig(retry))
	}
	opts = append(opts, options...)
	return NewClient(httpclient.NewHTTPClient(opts...))
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// request performs the call and decodes a 2xx body into W
func request[W any](ctx context.Context, c *Client, method, path string, body interface{}, fallback string) Result[W] {
	resp, err := c.http.DoRequest(ctx, method, path, body)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			code, message := decodeErrorBody(httpErr.Body, fallback)
			return fail[W](code, message)
		}
		if ctx.Err() != nil {
			return fail[W](CodeCanceled, fallback)
		}

		c.logger.Error("Backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(errors.Wrap(err, "backend transport")))
		return fail[W]("", fallback)
	}

	var out W
	if err := c.http.ProcessJSONResponse(resp, &out); err != nil {
		c.logger.Error("Failed to decode backend response",
			zap.String("path", path),
			zap.Error(errors.Wrapf(err, "decode %s", path)))
		return fail[W]("", fallback)
	}
	return ok(out)
}

func decodeErrorBody(body, fallback string) (string, string) {
	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err != nil {
		return "", fallback
	}
	if eb.Message == "" {
		return eb.Code, fallback
	}
	return eb.Code, eb.Message
}

// mapResult converts a successful wire result into its domain form
func mapResult[W, T any](r Result[W], fn func(W) T) Result[T] {
	if !r.Succeeded {
		return fail[T](r.Code, r.Message)
	}
	return ok(fn(r.Data))
}

// FromCents converts integer cents into currency units
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// ToCents converts currency units into integer cents
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type wireCartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
}

type wireCart struct {
	Items    []wireCartItem `json:"items"`
	Subtotal int64          `json:"subtotal"`
}

// GetCart fetches the current cart
func (c *Client) GetCart(ctx context.Context) Result[Cart] {
	r := request[wireCart](ctx, c, http.MethodGet, "/cart", nil, constants.MsgCartUnavailable)
	return mapResult(r, func(w wireCart) Cart {
		cart := Cart{Subtotal: FromCents(w.Subtotal), Items: make([]CartItem, 0, len(w.Items))}
		for _, it := range w.Items {
			cart.Items = append(cart.Items, CartItem{
				ID:       it.ID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    FromCents(it.Price),
				Image:    it.Image,
			})
		}
		return cart
	})
}

type wireAddress struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	StateAcronym string `json:"state-acronym"`
}

// LookupAddress resolves a CEP. deliveryMode asks the backend to also check
// that the CEP is inside the delivery coverage.
func (c *Client) LookupAddress(ctx context.Context, cep string, deliveryMode bool) Result[Address] {
	path := fmt.Sprintf("/cepaddress/%s/checkout", url.PathEscape(cep))
	body := map[string]bool{"deliveryMode": deliveryMode}

	r := request[wireAddress](ctx, c, http.MethodPost, path, body, constants.MsgAddressLookupFailure)
	if !r.Succeeded {
		c.logger.Info("Address lookup failed",
			zap.String("cep", cep),
			zap.Bool("delivery_mode", deliveryMode),
			zap.String("code", r.Code))
	}
	return mapResult(r, func(w wireAddress) Address {
		return Address{
			Street:       w.Street,
			Neighborhood: w.Neighborhood,
			City:         w.City,
			State:        w.StateAcronym,
		}
	})
}

type wireInstallment struct {
	InstallmentsCount int   `json:"installmentsCount"`
	InstallmentValue  int64 `json:"installmentValue"`
}

// CalculateFees lists the installment plans for amount and the card BIN
func (c *Client) CalculateFees(ctx context.Context, amount float64, cardBin string) Result[[]InstallmentOption] {
	body := map[string]interface{}{
		"amount":  ToCents(amount),
		"cardBin": BIN(cardBin),
	}
	r := request[[]wireInstallment](ctx, c, http.MethodPost, "/calculatefees", body, constants.MsgInstallmentsFailure)
	return mapResult(r, func(w []wireInstallment) []InstallmentOption {
		options := make([]InstallmentOption, 0, len(w))
		for _, it := range w {
			options = append(options, InstallmentOption{Count: it.InstallmentsCount, Value: FromCents(it.InstallmentValue)})
		}
		return options
	})
}

// BIN returns the issuer prefix of a card number, digits only
func BIN(cardNumber string) string {
	digits := mask.Digits(cardNumber)
	if len(digits) > constants.BinLength {
		return digits[:constants.BinLength]
	}
	return digits
}

type wireDeliveryOptions struct {
	Dates       []DeliveryDate `json:"dates"`
	Hours       []DeliveryHour `json:"hours"`
	PriorityFee int64          `json:"priorityFee"`
	PixDiscount float64        `json:"pixDiscount"`
}

// GetDeliveryOptions fetches the delivery date/hour catalog
func (c *Client) GetDeliveryOptions(ctx context.Context) Result[DeliveryOptions] {
	r := request[wireDeliveryOptions](ctx, c, http.MethodGet, "/delivery", nil, constants.MsgDeliveryOptionsFailure)
	return mapResult(r, func(w wireDeliveryOptions) DeliveryOptions {
		return DeliveryOptions{
			Dates:       w.Dates,
			Hours:       w.Hours,
			PriorityFee: FromCents(w.PriorityFee),
			PixDiscount: w.PixDiscount,
		}
	})
}

type wireSubsidy struct {
	Has   bool  `json:"has"`
	Value int64 `json:"value"`
}

// GetSubsidy checks shipping subsidy eligibility for a CEP
func (c *Client) GetSubsidy(ctx context.Context, cep string) Result[Subsidy] {
	path := fmt.Sprintf("/delivery/%s/subsidy", url.PathEscape(cep))
	r := request[wireSubsidy](ctx, c, http.MethodGet, path, nil, constants.MsgSubsidyFailure)
	return mapResult(r, func(w wireSubsidy) Subsidy {
		return Subsidy{Has: w.Has, Value: FromCents(w.Value)}
	})
}

type wireQuotation struct {
	Total     int64  `json:"total"`
	Validator string `json:"validator"`
}

// QuoteDelivery prices a delivery slot. Canceling ctx abandons the request and
// yields a Canceled result, never a successful one.
func (c *Client) QuoteDelivery(ctx context.Context, req QuoteRequest) Result[Quotation] {
	r := request[wireQuotation](ctx, c, http.MethodPost, "/site/checkout-delivery", req, constants.MsgQuotationFailure)
	if r.Succeeded && ctx.Err() != nil {
		return fail[Quotation](CodeCanceled, constants.MsgQuotationFailure)
	}
	return mapResult(r, func(w wireQuotation) Quotation {
		return Quotation{Price: FromCents(w.Total), Validator: w.Validator}
	})
}

type wireCoupon struct {
	Code         string `json:"code"`
	Value        int64  `json:"value"`
	IsPercentage bool   `json:"isPercentage"`
	CouponType   string `json:"couponType"`
}

// GetCoupon validates a coupon code for the buyer
func (c *Client) GetCoupon(ctx context.Context, req CouponRequest) Result[Coupon] {
	req.CPF = mask.Digits(req.CPF)
	r := request[wireCoupon](ctx, c, http.MethodPost, "/get_coupon", req, constants.MsgCouponFailure)
	return mapResult(r, func(w wireCoupon) Coupon {
		// Percentages travel in hundredths of a percent, amounts in cents
		return Coupon{
			Code:         w.Code,
			Value:        FromCents(w.Value),
			IsPercentage: w.IsPercentage,
			CouponType:   w.CouponType,
		}
	})
}

// ProcessPayment submits the order for the given payment method
func (c *Client) ProcessPayment(ctx context.Context, method string, payload OrderPayload) Result[PaymentReceipt] {
	path := fmt.Sprintf("/payment/process/%s", url.PathEscape(method))
	r := request[PaymentReceipt](ctx, c, http.MethodPost, path, payload, constants.MsgPaymentFailure)
	if r.Succeeded {
		c.logger.Info("Payment processed",
			zap.String("method", method),
			zap.String("transaction_id", r.Data.TransactionID),
			zap.String("session_id", payload.SessionID))
	} else {
		c.logger.Warn("Payment rejected",
			zap.String("method", method),
			zap.String("code", r.Code),
			zap.String("session_id", payload.SessionID))
	}
	return r
}
