package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/validation"
	"go.uber.org/zap"
)

const deliveryOptionsKey = "delivery-options"

func (c *Controller) registerReactions() {
	c.store.On(FieldBillingCep, func(_, cep string) {
		c.lookupAddress(billingGroup, cep)
	})
	c.store.On(FieldShippingCep, func(_, cep string) {
		// A new delivery address invalidates the chosen slot
		c.store.Set(FieldDeliveryDate, "")
		c.store.Set(FieldDeliveryHour, "")
		c.lookupAddress(shippingGroup, cep)
	})
	c.store.On(FieldDeliveryPlace, c.onDeliveryPlaceChanged)
	c.store.On(FieldPaymentMethod, c.onPaymentMethodChanged)

	// Watchers run in this order on every evaluation
	c.store.Watch("tokenization", c.cardKey, c.onCardChanged)
	c.store.Watch("quotation", c.quotationKey, c.onQuotationInputs)
	c.store.Watch("installments", c.installmentsKey, c.onInstallmentInputs)
	c.store.Watch("subsidy", c.subsidyKey, c.onShippingCepParsed)
}

func (c *Controller) nextLookup(f Field) uint64 {
	c.lookupSeq[f]++
	return c.lookupSeq[f]
}

// lookupAddress resolves cep and fills the group's address fields
func (c *Controller) lookupAddress(g addressGroup, cep string) {
	seq := c.nextLookup(g.Cep)
	if !validation.IsPostalCode(cep) {
		return
	}

	ctx := c.ctx
	c.spawn(func() {
		r := c.api.LookupAddress(ctx, cep, false)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.lookupSeq[g.Cep] != seq || ctx.Err() != nil {
			return
		}
		c.applyAddress(g, cep, r)
		c.store.Notify()
	})
}

func (c *Controller) applyAddress(g addressGroup, cep string, r backend.Result[backend.Address]) {
	if !r.Succeeded {
		for _, f := range g.lookupFields() {
			c.store.Set(f, "")
		}
		c.st.Visited.Add(g.Cep)
		c.setAddressError(g, c.addressErrorMessage(r.Code))
		c.log.Info("Address lookup rejected",
			zap.String("cep", cep),
			zap.String("field", string(g.Cep)),
			zap.String("code", r.Code))
		return
	}

	c.store.Set(g.Street, r.Data.Street)
	c.store.Set(g.Neighborhood, r.Data.Neighborhood)
	c.store.Set(g.City, r.Data.City)
	c.store.Set(g.State, r.Data.State)
	c.setAddressError(g, "")

	if g == billingGroup && c.st.Form.Get(FieldDeliveryPlace) == constants.DeliveryPlaceSame {
		// The buyer must confirm the delivery place again for the new address
		c.store.Set(FieldDeliveryPlace, "")
	}
}

func (c *Controller) setAddressError(g addressGroup, message string) {
	if g == billingGroup {
		c.st.BillingAddressError = message
	} else {
		c.st.ShippingAddressError = message
	}
}

func (c *Controller) addressErrorMessage(code string) string {
	if msg, ok := c.cfg.AddressErrorMessages[code]; ok && msg != "" {
		return msg
	}
	if c.cfg.GenericDeliveryError != "" {
		return c.cfg.GenericDeliveryError
	}
	return constants.MsgGenericDeliveryError
}

// onDeliveryPlaceChanged checks that the billing address is deliverable when
// the buyer ships to it
func (c *Controller) onDeliveryPlaceChanged(_, place string) {
	c.st.DeliveryPlaceError = ""
	seq := c.nextLookup(FieldDeliveryPlace)
	if place != constants.DeliveryPlaceSame || !c.st.IsCreditCard() {
		return
	}
	if !billingReady(c.facts()) {
		return
	}

	ctx := c.ctx
	cep := c.st.Form.Get(FieldBillingCep)
	c.spawn(func() {
		r := c.api.LookupAddress(ctx, cep, true)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.lookupSeq[FieldDeliveryPlace] != seq || ctx.Err() != nil {
			return
		}
		if !r.Succeeded {
			c.st.DeliveryPlaceError = constants.MsgDeliveryPlaceError
			c.log.Info("Billing address is not deliverable",
				zap.String("cep", cep),
				zap.String("code", r.Code))
		}
		c.store.Notify()
	})
}

func (c *Controller) onPaymentMethodChanged(old, method string) {
	if method != "" && c.st.Options == nil {
		c.fetchDeliveryOptions()
	}

	if old == constants.PaymentMethodCreditCard && method != constants.PaymentMethodCreditCard {
		for _, f := range cardFields {
			c.store.Set(f, "")
		}
		c.store.Set(FieldInstallments, "")
		c.store.Set(FieldDeliveryPlace, "")
		c.st.CardToken = ""
		c.st.CardErrors = nil
		c.st.TokenizationError = ""
	}

	if method == constants.PaymentMethodCreditCard && c.sdk != nil {
		if _, err := c.sdk.Load(); err != nil {
			c.st.TokenizationError = err.Error()
		}
	}
	c.log.Debug("Payment method selected", zap.String("method", method))
}

// fetchDeliveryOptions loads the delivery catalog; concurrent callers share
// one request
func (c *Controller) fetchDeliveryOptions() {
	ctx := c.ctx
	c.spawn(func() {
		v, _, _ := c.options.Do(deliveryOptionsKey, func() (interface{}, error) {
			return c.api.GetDeliveryOptions(ctx), nil
		})
		r := v.(backend.Result[backend.DeliveryOptions])

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if !r.Succeeded {
			c.st.OptionsError = r.Message
			c.log.Warn("Failed to load delivery options", zap.String("code", r.Code))
			return
		}
		if c.st.Options == nil {
			opts := r.Data
			c.st.Options = &opts
		}
		c.st.OptionsError = ""
		c.store.Notify()
	})
}

// cardKey identifies the card to tokenize, empty while it cannot be tokenized
func (c *Controller) cardKey() string {
	if !c.st.IsCreditCard() || !cardReady(c.facts()) {
		return ""
	}
	f := c.st.Form
	return strings.Join([]string{f.Get(FieldCardHolder), f.Get(FieldCardNumber), f.Get(FieldCardExpiry), f.Get(FieldCardCVV)}, "|")
}

func (c *Controller) onCardChanged(_, key string) {
	c.st.CardToken = ""
	c.st.CardErrors = nil
	c.st.TokenizationError = ""
	if key == "" {
		return
	}

	if c.sdk == nil {
		c.st.TokenizationError = tokenization.ErrSDKNotLoaded.Error()
		return
	}
	provider, err := c.sdk.Provider()
	if err != nil {
		c.st.TokenizationError = err.Error()
		c.log.Warn("Card typed before tokenization loaded", zap.Error(err))
		return
	}

	out, err := provider.EncryptCard(c.ctx, c.card())
	if err != nil {
		c.st.TokenizationError = err.Error()
		c.log.Error("Card tokenization failed", zap.Error(err))
		return
	}
	if out.HasErrors() {
		c.st.CardErrors = out.Errors
		codes := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			codes = append(codes, string(e.Code))
		}
		c.log.Info("Card rejected by tokenizer", zap.Strings("codes", codes))
		return
	}
	c.st.CardToken = out.EncryptedCard
}

// card converts the form into tokenizer input; expiry is MM/YY
func (c *Controller) card() tokenization.Card {
	f := c.st.Form
	month, year, _ := strings.Cut(f.Get(FieldCardExpiry), "/")
	return tokenization.Card{
		Number:       f.Get(FieldCardNumber),
		Holder:       strings.TrimSpace(f.Get(FieldCardHolder)),
		ExpMonth:     month,
		ExpYear:      "20" + year,
		SecurityCode: f.Get(FieldCardCVV),
	}
}

// quotationKey is the quotation input tuple, empty until all three inputs
// are present and the CEP is well formed
func (c *Controller) quotationKey() string {
	cep := c.st.ShippingCep()
	date := c.st.Form.Get(FieldDeliveryDate)
	hour := c.st.Form.Get(FieldDeliveryHour)
	if !validation.IsPostalCode(cep) || date == "" || hour == "" {
		return ""
	}
	return strings.Join([]string{cep, date, hour}, "|")
}

// onQuotationInputs cancels the outstanding quotation and requests a new one.
// Only the response to the latest request is ever applied.
func (c *Controller) onQuotationInputs(_, key string) {
	if c.quoteCancel != nil {
		c.quoteCancel()
		c.quoteCancel = nil
	}
	c.quoteSeq++
	c.st.Quotation = nil
	c.st.Quoting = false
	c.st.QuotationError = ""
	if key == "" {
		return
	}

	seq := c.quoteSeq
	req := backend.QuoteRequest{
		Cep:          c.st.ShippingCep(),
		DeliveryDate: c.st.Form.Get(FieldDeliveryDate),
		DeliveryHour: c.st.Form.Get(FieldDeliveryHour),
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.quoteCancel = cancel
	c.st.Quoting = true

	c.spawn(func() {
		defer cancel()
		r := c.api.QuoteDelivery(ctx, req)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.quoteSeq || ctx.Err() != nil || r.Canceled() {
			c.log.Debug("Discarding superseded quotation", zap.Uint64("seq", seq))
			return
		}
		c.st.Quoting = false
		c.quoteCancel = nil
		if !r.Succeeded {
			c.st.QuotationError = r.Message
			c.log.Warn("Delivery quotation failed",
				zap.String("cep", req.Cep),
				zap.String("code", r.Code))
			c.store.Notify()
			return
		}

		q := &DeliveryQuotation{
			Cep:       req.Cep,
			Date:      req.DeliveryDate,
			Hour:      req.DeliveryHour,
			Price:     r.Data.Price,
			Validator: r.Data.Validator,
		}
		if c.st.Options != nil {
			date, dok := c.st.Options.FindDate(req.DeliveryDate)
			hour, hok := c.st.Options.FindHour(req.DeliveryHour)
			q.HasPriorityEligibility = dok && hok && date.IsPriority && hour.IsPriority
		}
		c.st.Quotation = q
		c.log.Debug("Delivery quoted",
			zap.String("cep", req.Cep),
			zap.Float64("price", q.Price),
			zap.Uint64("seq", seq))
		c.store.Notify()
	})
}

// installmentsKey changes whenever the total or the tokenized card changes
func (c *Controller) installmentsKey() string {
	if !c.st.IsCreditCard() || c.st.CardToken == "" || len(c.st.CardErrors) > 0 || !cardReady(c.facts()) {
		return ""
	}
	return fmt.Sprintf("%.2f|%s|%s", c.pricing().Total, c.st.CardBIN(), c.st.CardToken)
}

// onInstallmentInputs requests installment plans. Each request carries a
// sequence number and responses to older requests are dropped.
func (c *Controller) onInstallmentInputs(_, key string) {
	c.installmentSeq++
	c.st.Installments = nil
	c.st.InstallmentsError = ""
	if key == "" {
		return
	}

	seq := c.installmentSeq
	total := c.pricing().Total
	bin := c.st.CardBIN()
	ctx := c.ctx
	c.spawn(func() {
		r := c.api.CalculateFees(ctx, total, bin)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.installmentSeq || ctx.Err() != nil {
			c.log.Debug("Discarding stale installment options", zap.Uint64("seq", seq))
			return
		}
		if !r.Succeeded {
			c.st.InstallmentsError = r.Message
			c.log.Warn("Installment calculation failed", zap.String("code", r.Code))
			c.store.Notify()
			return
		}
		c.st.Installments = r.Data
		c.store.Notify()
	})
}

// subsidyKey is the parsed delivery CEP once it is well formed and, on the
// credit card path, a delivery place was chosen
func (c *Controller) subsidyKey() string {
	cep := c.st.ShippingCep()
	if !validation.IsPostalCode(cep) {
		return ""
	}
	switch {
	case c.st.IsPix():
		return cep
	case c.st.IsCreditCard() && c.st.Form.Get(FieldDeliveryPlace) != "":
		return cep
	}
	return ""
}

func (c *Controller) onShippingCepParsed(_, cep string) {
	c.subsidySeq++
	c.st.Subsidy = backend.Subsidy{}
	if cep == "" {
		return
	}

	seq := c.subsidySeq
	ctx := c.ctx
	c.spawn(func() {
		r := c.api.GetSubsidy(ctx, cep)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.subsidySeq || ctx.Err() != nil {
			return
		}
		if r.Succeeded {
			c.st.Subsidy = r.Data
		} else {
			c.st.Subsidy = backend.Subsidy{}
			c.log.Warn("Subsidy lookup failed", zap.String("cep", cep), zap.String("code", r.Code))
		}
		c.store.Notify()
	})
}
