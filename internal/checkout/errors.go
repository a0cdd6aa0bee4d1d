package checkout

import "errors"

var (
	// ErrNotStarted is returned when Submit runs before Start
	ErrNotStarted = errors.New("checkout not started")
	// ErrPaymentPending is returned while a payment call is outstanding
	ErrPaymentPending = errors.New("payment already pending")
	// ErrQuotationInFlight is returned while the delivery quotation is loading
	ErrQuotationInFlight = errors.New("delivery quotation in flight")
	// ErrOrderPlaced is returned once a payment succeeded
	ErrOrderPlaced = errors.New("order already placed")
	// ErrCartUnavailable is returned when Start cannot load the cart
	ErrCartUnavailable = errors.New("cart unavailable")
)
