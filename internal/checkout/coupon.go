package checkout

import (
	"context"
	"strings"

	"github.com/cyphera/storefront/internal/client/backend"
	"go.uber.org/zap"
)

// ApplyCoupon asks the backend to validate code and stores the applied or
// rejected coupon. An empty code removes the coupon.
func (c *Controller) ApplyCoupon(ctx context.Context, code string) *Coupon {
	code = strings.TrimSpace(code)

	c.mu.Lock()
	c.store.Set(FieldCoupon, code)
	c.couponSeq++
	seq := c.couponSeq
	if code == "" {
		c.st.Coupon = nil
		c.store.Notify()
		c.mu.Unlock()
		return nil
	}
	req := backend.CouponRequest{
		Code:                code,
		CPF:                 c.st.Form.Get(FieldCPF),
		HasSubsidy:          c.st.Subsidy.Has,
		DeliveryCep:         c.st.ShippingCep(),
		HasSelectedDelivery: c.st.Form.Get(FieldDeliveryDate) != "" && c.st.Form.Get(FieldDeliveryHour) != "",
	}
	c.mu.Unlock()

	r := c.api.GetCoupon(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.couponSeq {
		return cloneCoupon(c.st.Coupon)
	}

	if r.Succeeded {
		applied := r.Data.Code
		if applied == "" {
			applied = code
		}
		c.st.Coupon = &Coupon{
			Code:         applied,
			Value:        r.Data.Value,
			IsPercentage: r.Data.IsPercentage,
			Type:         r.Data.CouponType,
		}
		c.log.Info("Coupon applied", zap.String("code", applied))
	} else {
		c.st.Coupon = &Coupon{Code: code, Error: true, Message: r.Message}
		c.log.Info("Coupon rejected", zap.String("code", code), zap.String("reason", r.Code))
	}
	c.store.Notify()
	return cloneCoupon(c.st.Coupon)
}

// RemoveCoupon clears any applied or rejected coupon
func (c *Controller) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.couponSeq++
	c.st.Coupon = nil
	c.store.Set(FieldCoupon, "")
	c.store.Notify()
}

func cloneCoupon(cp *Coupon) *Coupon {
	if cp == nil {
		return nil
	}
	out := *cp
	return &out
}
