package checkout

import (
	"fmt"
	"strings"

	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/mask"
	"github.com/go-playground/validator/v10"
)

var payloadValidator = validator.New()

// buildPayload assembles the order for the selected payment method and
// checks it against the payload's struct tags
func buildPayload(st *State, sessionID string, b Breakdown) (backend.OrderPayload, error) {
	f := st.Form
	payload := backend.OrderPayload{
		SessionID: sessionID,
		Customer: backend.OrderCustomer{
			Name:      strings.TrimSpace(f.Get(FieldName)),
			Email:     strings.TrimSpace(f.Get(FieldEmail)),
			CPF:       mask.Digits(f.Get(FieldCPF)),
			Phone:     mask.Digits(f.Get(FieldPhone)),
			BirthDate: f.Get(FieldBirthDate),
		},
		Delivery: backend.OrderDelivery{
			Date:  f.Get(FieldDeliveryDate),
			Hour:  f.Get(FieldDeliveryHour),
			Price: backend.ToCents(b.Shipping + b.PriorityFee),
		},
		Total: backend.ToCents(b.Total),
	}
	if st.Quotation != nil {
		payload.Delivery.Validator = st.Quotation.Validator
	}
	if st.Coupon.Applied() {
		payload.CouponCode = st.Coupon.Code
	}

	switch {
	case st.IsPix():
		payload.ShippingAddress = parseAddress(f, shippingGroup)
	case st.IsCreditCard():
		billing := parseAddress(f, billingGroup)
		payload.BillingAddress = &billing
		if st.ShipsToBilling() {
			payload.ShippingAddress = billing
		} else {
			payload.ShippingAddress = parseAddress(f, shippingGroup)
		}

		installment, ok := st.SelectedInstallment()
		if !ok {
			return backend.OrderPayload{}, fmt.Errorf("no installment plan selected")
		}
		payload.Card = &backend.OrderCard{
			EncryptedCard:    st.CardToken,
			Holder:           strings.TrimSpace(f.Get(FieldCardHolder)),
			Installments:     installment.Count,
			InstallmentValue: backend.ToCents(installment.Value),
		}
	default:
		return backend.OrderPayload{}, fmt.Errorf("unsupported payment method %q", st.PaymentMethod())
	}

	if err := payloadValidator.Struct(payload); err != nil {
		return backend.OrderPayload{}, fmt.Errorf("invalid order payload: %w", err)
	}
	return payload, nil
}

func parseAddress(f FormState, g addressGroup) backend.OrderAddress {
	return backend.OrderAddress{
		Cep:          mask.Digits(f.Get(g.Cep)),
		Street:       strings.TrimSpace(f.Get(g.Street)),
		Number:       strings.TrimSpace(f.Get(g.Number)),
		Complement:   strings.TrimSpace(f.Get(g.Complement)),
		Neighborhood: strings.TrimSpace(f.Get(g.Neighborhood)),
		City:         strings.TrimSpace(f.Get(g.City)),
		State:        strings.ToUpper(strings.TrimSpace(f.Get(g.State))),
	}
}
