package checkout

import (
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/mask"
)

// FormState holds every value typed or picked by the buyer
type FormState map[Field]string

// Get returns the value of f, empty when unset
func (s FormState) Get(f Field) string {
	return s[f]
}

// Clone copies the form
func (s FormState) Clone() FormState {
	out := make(FormState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// VisitedFieldSet records fields blurred at least once. It only grows.
type VisitedFieldSet struct {
	fields map[Field]struct{}
	all    bool
}

// NewVisitedFieldSet returns an empty set
func NewVisitedFieldSet() VisitedFieldSet {
	return VisitedFieldSet{fields: make(map[Field]struct{})}
}

// Add marks f visited
func (v *VisitedFieldSet) Add(f Field) {
	if v.fields == nil {
		v.fields = make(map[Field]struct{})
	}
	v.fields[f] = struct{}{}
}

// MarkAll marks every field visited, including ones added later
func (v *VisitedFieldSet) MarkAll() {
	v.all = true
}

// Has reports whether f was visited
func (v VisitedFieldSet) Has(f Field) bool {
	if v.all {
		return true
	}
	_, ok := v.fields[f]
	return ok
}

// All reports whether MarkAll was called
func (v VisitedFieldSet) All() bool {
	return v.all
}

// Clone copies the set
func (v VisitedFieldSet) Clone() VisitedFieldSet {
	out := VisitedFieldSet{fields: make(map[Field]struct{}, len(v.fields)), all: v.all}
	for f := range v.fields {
		out.fields[f] = struct{}{}
	}
	return out
}

// Coupon is nil when unset, applied when Error is false, rejected otherwise
type Coupon struct {
	Code         string
	Value        float64
	IsPercentage bool
	Type         string
	Error        bool
	Message      string
}

// Applied reports whether the coupon grants a discount
func (c *Coupon) Applied() bool {
	return c != nil && !c.Error
}

// DeliveryQuotation is the priced slot for the current CEP, date and hour
type DeliveryQuotation struct {
	Cep                    string
	Date                   string
	Hour                   string
	Price                  float64
	Validator              string
	HasPriorityEligibility bool
}

// Phase is the submission sequencer state
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseBlocked    Phase = "blocked"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is everything the checkout derives pricing and validation from
type State struct {
	Form    FormState
	Visited VisitedFieldSet

	Cart      backend.Cart
	Options   *backend.DeliveryOptions
	Quotation *DeliveryQuotation
	Quoting   bool
	Subsidy   backend.Subsidy
	Coupon    *Coupon

	Installments []backend.InstallmentOption

	CardToken         string
	CardErrors        []tokenization.CardError
	TokenizationError string

	BillingAddressError  string
	ShippingAddressError string
	DeliveryPlaceError   string
	QuotationError       string
	OptionsError         string
	InstallmentsError    string

	PaymentPending bool
	Phase          Phase
}

// Clone deep-copies the state
func (s *State) Clone() State {
	out := *s
	out.Form = s.Form.Clone()
	out.Visited = s.Visited.Clone()
	out.Cart.Items = append([]backend.CartItem(nil), s.Cart.Items...)
	if s.Options != nil {
		opts := *s.Options
		opts.Dates = append([]backend.DeliveryDate(nil), s.Options.Dates...)
		opts.Hours = append([]backend.DeliveryHour(nil), s.Options.Hours...)
		out.Options = &opts
	}
	if s.Quotation != nil {
		q := *s.Quotation
		out.Quotation = &q
	}
	if s.Coupon != nil {
		c := *s.Coupon
		out.Coupon = &c
	}
	out.Installments = append([]backend.InstallmentOption(nil), s.Installments...)
	out.CardErrors = append([]tokenization.CardError(nil), s.CardErrors...)
	return out
}

// PaymentMethod returns the selected method, empty when unset
func (s *State) PaymentMethod() string {
	return s.Form.Get(FieldPaymentMethod)
}

// IsCreditCard reports whether credit card is selected
func (s *State) IsCreditCard() bool {
	return s.PaymentMethod() == constants.PaymentMethodCreditCard
}

// IsPix reports whether PIX is selected
func (s *State) IsPix() bool {
	return s.PaymentMethod() == constants.PaymentMethodPix
}

// ShipsToBilling reports whether the order ships to the billing address
func (s *State) ShipsToBilling() bool {
	return s.IsCreditCard() && s.Form.Get(FieldDeliveryPlace) == constants.DeliveryPlaceSame
}

// ShippingCep is the CEP the order ships to: the billing CEP when the buyer
// chose the same address, otherwise the shipping CEP
func (s *State) ShippingCep() string {
	if s.ShipsToBilling() {
		return s.Form.Get(FieldBillingCep)
	}
	return s.Form.Get(FieldShippingCep)
}

// CardErrorFor reports whether the tokenizer rejected a card field
func (s *State) CardErrorFor(codes ...tokenization.ErrorCode) bool {
	for _, e := range s.CardErrors {
		for _, c := range codes {
			if e.Code == c {
				return true
			}
		}
	}
	return false
}

// SelectedInstallment returns the option matching the chosen count
func (s *State) SelectedInstallment() (backend.InstallmentOption, bool) {
	chosen := s.Form.Get(FieldInstallments)
	if chosen == "" {
		return backend.InstallmentOption{}, false
	}
	for _, opt := range s.Installments {
		if formatCount(opt.Count) == chosen {
			return opt, true
		}
	}
	return backend.InstallmentOption{}, false
}

// CardBIN returns the issuer prefix of the typed card
func (s *State) CardBIN() string {
	return backend.BIN(mask.Digits(s.Form.Get(FieldCardNumber)))
}
