package checkout

import (
	"context"
	"net/url"
	"time"

	"github.com/cyphera/storefront/internal/constants"
	"go.uber.org/zap"
)

// Outcome reports how a submission attempt ended
type Outcome struct {
	Phase         Phase
	Field         Field
	TransactionID string
	RedirectURL   string
	Message       string
}

// Submit validates the whole form and, when every applicable field passes,
// sends exactly one payment call for the selected method. It is rejected
// while a payment or a delivery quotation is outstanding.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	switch {
	case !c.started:
		c.mu.Unlock()
		return Outcome{}, ErrNotStarted
	case c.st.Phase == PhaseSucceeded:
		c.mu.Unlock()
		return Outcome{Phase: PhaseSucceeded}, ErrOrderPlaced
	case c.st.PaymentPending:
		c.mu.Unlock()
		return Outcome{Phase: PhaseSubmitting}, ErrPaymentPending
	case c.st.Quoting:
		c.mu.Unlock()
		return Outcome{Phase: PhaseIdle}, ErrQuotationInFlight
	}

	c.st.Phase = PhaseValidating
	c.st.Visited.MarkAll()
	c.registry.TriggerAll(c.facts(), c.presenter.Blur)
	// Let reactions to the stricter verdicts settle before deciding
	c.store.Notify()

	if invalid, found := c.registry.FirstInvalid(c.facts()); found {
		c.block(invalid)
		c.st.Phase = PhaseIdle
		c.mu.Unlock()
		return Outcome{Phase: PhaseBlocked, Field: invalid.Field}, nil
	}

	method := c.st.PaymentMethod()
	breakdown := c.pricing()
	payload, err := buildPayload(&c.st, c.sessionID, breakdown)
	if err != nil {
		c.log.Error("Order payload rejected", zap.Error(err))
		c.presenter.Alert(c.paymentFailureMessage())
		c.st.Phase = PhaseIdle
		c.mu.Unlock()
		return Outcome{Phase: PhaseFailed, Message: err.Error()}, nil
	}

	c.st.PaymentPending = true
	c.st.Phase = PhaseSubmitting
	c.presenter.ShowLoading()
	c.log.Info("Submitting payment",
		zap.String("method", method),
		zap.Float64("total", breakdown.Total))
	c.mu.Unlock()

	r := c.api.ProcessPayment(ctx, method, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.PaymentPending = false

	if !r.Succeeded {
		c.presenter.HideLoading()
		c.presenter.Alert(c.paymentFailureMessage())
		c.st.Phase = PhaseIdle
		c.log.Warn("Payment failed", zap.String("method", method), zap.String("code", r.Code))
		return Outcome{Phase: PhaseFailed, Message: r.Message}, nil
	}

	c.st.Phase = PhaseSucceeded
	if c.cart != nil {
		if err := c.cart.Clear(); err != nil {
			c.log.Warn("Failed to clear cart snapshot", zap.Error(err))
		}
	}
	target := c.redirectURL(method, r.Data.TransactionID)
	c.presenter.Redirect(target)
	return Outcome{Phase: PhaseSucceeded, TransactionID: r.Data.TransactionID, RedirectURL: target}, nil
}

// block brings the first invalid field into view and focuses text inputs
// once the scroll has started
func (c *Controller) block(invalid FieldValidation) {
	c.st.Phase = PhaseBlocked
	c.log.Debug("Submission blocked", zap.String("field", string(invalid.Field)))
	if invalid.Target == nil {
		return
	}

	target := *invalid.Target
	c.presenter.ScrollIntoView(target)
	if !target.TextInput {
		return
	}

	delay := c.cfg.FocusDelay
	ctx := c.ctx
	c.spawn(func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.presenter.Focus(target)
	})
}

func (c *Controller) paymentFailureMessage() string {
	if c.cfg.PaymentFailureMessage != "" {
		return c.cfg.PaymentFailureMessage
	}
	return constants.MsgPaymentFailure
}

func (c *Controller) redirectURL(method, transactionID string) string {
	base := c.cfg.Redirects.CreditCard
	if method == constants.PaymentMethodPix {
		base = c.cfg.Redirects.Pix
	}
	return base + "?transactionId=" + url.QueryEscape(transactionID)
}
