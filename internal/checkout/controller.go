// Package checkout is the checkout pricing and validation controller. It owns
// the form, derives pricing and field verdicts from it, runs the dependent
// backend lookups and sequences the payment submission.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cyphera/storefront/internal/cart"
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Presenter renders the controller's side effects. It is called with the
// controller lock held and must not call back into the Controller.
type Presenter interface {
	Blur(field Field, target Target)
	ScrollIntoView(target Target)
	Focus(target Target)
	ShowLoading()
	HideLoading()
	Alert(message string)
	Redirect(url string)
}

// CartCache is the persisted cart shared with the floating cart widget
type CartCache interface {
	Load(ctx context.Context) (cart.Snapshot, error)
	Clear() error
}

// Controller is the checkout page. All methods are safe for concurrent use;
// backend lookups run in background goroutines whose results are applied
// under the controller lock.
type Controller struct {
	mu sync.Mutex

	cfg       config.CheckoutConfig
	api       backend.API
	sdk       *tokenization.Loader
	presenter Presenter
	cart      CartCache
	registry  *Registry
	store     *Store
	st        State
	now       func() time.Time
	log       *zap.Logger
	sessionID string
	started   bool

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	options singleflight.Group
	starts  singleflight.Group

	quoteCancel    context.CancelFunc
	quoteSeq       uint64
	installmentSeq uint64
	subsidySeq     uint64
	couponSeq      uint64
	lookupSeq      map[Field]uint64
}

// Option configures a Controller
type Option func(*Controller)

// WithConfig overrides the checkout settings
func WithConfig(cfg config.CheckoutConfig) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithPresenter sets the UI adapter
func WithPresenter(p Presenter) Option {
	return func(c *Controller) { c.presenter = p }
}

// WithCartCache reads the cart from the persisted snapshot instead of the backend
func WithCartCache(cc CartCache) Option {
	return func(c *Controller) { c.cart = cc }
}

// WithBindings overrides the field to element bindings
func WithBindings(b Bindings) Option {
	return func(c *Controller) { c.registry = NewRegistry(b) }
}

// WithClock overrides the time source used by expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSessionID fixes the checkout session identifier
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// New builds a controller. sdk may be nil when only PIX is offered.
func New(api backend.API, sdk *tokenization.Loader, options ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:       config.DefaultCheckoutConfig(),
		api:       api,
		sdk:       sdk,
		presenter: nopPresenter{},
		registry:  NewRegistry(DefaultBindings()),
		store:     NewStore(),
		now:       time.Now,
		sessionID: uuid.NewString(),
		ctx:       ctx,
		cancel:    cancel,
		lookupSeq: make(map[Field]uint64),
	}
	for _, opt := range options {
		opt(c)
	}

	c.log = logger.Log.With(zap.String("session_id", c.sessionID))
	c.st = State{
		Form:    c.store.Form(),
		Visited: NewVisitedFieldSet(),
		Phase:   PhaseIdle,
	}
	c.registerReactions()
	return c
}

// SessionID identifies this checkout in logs and payment payloads
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Start loads the cart, from the persisted snapshot when available.
// Concurrent calls share one load; a failed start may be retried.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if started {
		return nil
	}

	_, err, _ := c.starts.Do("start", func() (interface{}, error) {
		return nil, c.loadCart(ctx)
	})
	return err
}

func (c *Controller) loadCart(ctx context.Context) error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if started {
		return nil
	}

	var loaded backend.Cart
	if c.cart != nil {
		snap, err := c.cart.Load(ctx)
		if err != nil {
			c.log.Warn("Failed to load cart", zap.Error(err))
			c.fail(constants.MsgCartUnavailable)
			return fmt.Errorf("%w: %v", ErrCartUnavailable, err)
		}
		loaded = snap.Cart()
	} else {
		r := c.api.GetCart(ctx)
		if !r.Succeeded {
			c.fail(r.Message)
			return fmt.Errorf("%w: %s", ErrCartUnavailable, r.Message)
		}
		loaded = r.Data
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Cart = loaded
	c.started = true
	c.log.Info("Checkout started",
		zap.Int("items", len(loaded.Items)),
		zap.Float64("subtotal", loaded.Subtotal))
	c.store.Notify()
	return nil
}

// Input applies the field's mask to raw keyboard input and stores the result
func (c *Controller) Input(field Field, raw string) string {
	value := raw
	if m, ok := Masks[field]; ok {
		value = m(raw)
	}
	c.Set(field, value)
	return value
}

// Set writes a field and runs its reactions. It reports whether the value changed.
func (c *Controller) Set(field Field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Set(field, value)
}

// SetPaymentMethod selects PIX or credit card
func (c *Controller) SetPaymentMethod(method string) bool {
	return c.Set(FieldPaymentMethod, method)
}

// Blur marks the field visited and returns its verdict
func (c *Controller) Blur(field Field) FieldValidation {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Visited.Add(field)
	v, _ := c.registry.Validate(field, c.facts())
	return v
}

// Validations returns the verdict of every rule in form order
func (c *Controller) Validations() []FieldValidation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.ValidateAll(c.facts())
}

// FirstInvalid returns the first applicable invalid field
func (c *Controller) FirstInvalid() (FieldValidation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.FirstInvalid(c.facts())
}

// Pricing derives the current order pricing
func (c *Controller) Pricing() Breakdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pricing()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Clone()
}

// Wait blocks until every background lookup started so far has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight requests and waits for background work to stop
func (c *Controller) Close() {
	c.mu.Lock()
	if c.quoteCancel != nil {
		c.quoteCancel()
		c.quoteCancel = nil
	}
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) facts() Facts {
	return Facts{State: &c.st, Now: c.now()}
}

func (c *Controller) pricing() Breakdown {
	return ComputePricing(PricingInput{
		Subtotal:              c.st.Cart.Subtotal,
		FreeShippingThreshold: c.cfg.FreeShippingThreshold,
		PaymentMethod:         c.st.PaymentMethod(),
		DeliveryDate:          c.st.Form.Get(FieldDeliveryDate),
		DeliveryHour:          c.st.Form.Get(FieldDeliveryHour),
		Quotation:             c.st.Quotation,
		Options:               c.st.Options,
		Subsidy:               c.st.Subsidy,
		Coupon:                c.st.Coupon,
	})
}

// spawn runs fn in a tracked goroutine
func (c *Controller) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Controller) fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presenter.Alert(message)
}

type nopPresenter struct{}

func (nopPresenter) Blur(Field, Target)    {}
func (nopPresenter) ScrollIntoView(Target) {}
func (nopPresenter) Focus(Target)          {}
func (nopPresenter) ShowLoading()          {}
func (nopPresenter) HideLoading()          {}
func (nopPresenter) Alert(string)          {}
func (nopPresenter) Redirect(string)       {}
