package checkout

import (
	"math"

	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/constants"
)

// PricingInput enumerates everything the order total depends on
type PricingInput struct {
	Subtotal              float64
	FreeShippingThreshold float64
	PaymentMethod         string
	DeliveryDate          string
	DeliveryHour          string
	Quotation             *DeliveryQuotation
	Options               *backend.DeliveryOptions
	Subsidy               backend.Subsidy
	Coupon                *Coupon
}

// Breakdown is the derived order pricing. Discounts are zero or negative.
type Breakdown struct {
	Subtotal        float64 `json:"subtotal"`
	Shipping        float64 `json:"shipping"`
	PriorityFee     float64 `json:"priorityFee"`
	SubsidyDiscount float64 `json:"subsidyDiscount"`
	CouponDiscount  float64 `json:"couponDiscount"`
	PixDiscount     float64 `json:"pixDiscount"`
	Total           float64 `json:"total"`
}

// ComputePricing derives the order total. It performs no I/O and returns the
// same breakdown for the same input.
func ComputePricing(in PricingInput) Breakdown {
	b := Breakdown{Subtotal: in.Subtotal}
	b.Shipping = shippingPrice(in)
	b.PriorityFee = priorityFee(in)
	b.SubsidyDiscount = subsidyDiscount(in.Subsidy, b.Shipping)
	b.CouponDiscount = couponDiscount(in.Coupon, b)
	b.PixDiscount = pixDiscount(in)
	b.Total = Round2(b.Subtotal + b.Shipping + b.PriorityFee + b.SubsidyDiscount + b.CouponDiscount + b.PixDiscount)
	return b
}

// Round2 rounds to cents, half away from zero, keeping the sign
func Round2(x float64) float64 {
	r := math.Round(x*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

func shippingPrice(in PricingInput) float64 {
	threshold := in.FreeShippingThreshold
	if threshold <= 0 {
		threshold = constants.DefaultFreeShippingThreshold
	}
	if in.Subtotal >= threshold || in.Quotation == nil {
		return 0
	}
	return in.Quotation.Price
}

func priorityFee(in PricingInput) float64 {
	if in.Options == nil {
		return 0
	}
	date, ok := in.Options.FindDate(in.DeliveryDate)
	if !ok || !date.IsPriority {
		return 0
	}
	hour, ok := in.Options.FindHour(in.DeliveryHour)
	if !ok || !hour.IsPriority {
		return 0
	}
	return in.Options.PriorityFee
}

func subsidyDiscount(s backend.Subsidy, shipping float64) float64 {
	if !s.Has || shipping <= 0 {
		return 0
	}
	return -math.Min(s.Value, shipping)
}

func couponDiscount(c *Coupon, b Breakdown) float64 {
	if !c.Applied() {
		return 0
	}

	var basis float64
	switch c.Type {
	case constants.CouponTypeSubtotal:
		basis = b.Subtotal
	case constants.CouponTypeShipping:
		if b.SubsidyDiscount != 0 {
			// With a subsidy the coupon waives whatever shipping is still owed
			return Round2(-math.Max(b.Shipping+b.SubsidyDiscount, 0))
		}
		basis = b.Shipping
	}

	var discount float64
	if c.IsPercentage {
		discount = math.Min(c.Value/100, 1) * -basis
	} else {
		discount = -math.Min(basis, c.Value)
	}
	return Round2(discount)
}

func pixDiscount(in PricingInput) float64 {
	if in.PaymentMethod != constants.PaymentMethodPix || in.Options == nil || in.Options.PixDiscount <= 0 {
		return 0
	}
	return Round2(in.Options.PixDiscount / 100 * -in.Subtotal)
}
