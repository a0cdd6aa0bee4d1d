package checkout

import (
	"strconv"
	"strings"
	"time"

	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/validation"
)

// Facts is what a rule can look at
type Facts struct {
	State *State
	Now   time.Time
}

func (f Facts) value(field Field) string {
	return f.State.Form.Get(field)
}

// Rule validates one field. IgnoreWhen, when set and true, removes the rule
// from every aggregate.
type Rule struct {
	Field      Field
	Predicate  func(value string, f Facts) bool
	IgnoreWhen func(f Facts) bool
}

// FieldValidation is the verdict for one field
type FieldValidation struct {
	Field   Field
	Target  *Target
	IsValid bool
	Ignored bool
}

// Registry is the ordered list of field rules. Order matters: rules are
// evaluated top-down and later rules may stay silent until earlier ones pass.
type Registry struct {
	rules    []Rule
	bindings Bindings
}

// NewRegistry builds the checkout rules bound to the given targets
func NewRegistry(bindings Bindings) *Registry {
	return &Registry{rules: checkoutRules(), bindings: bindings}
}

// Rules returns the rules in evaluation order
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Validate evaluates the rule for field. ok is false when no rule exists.
func (r *Registry) Validate(field Field, facts Facts) (FieldValidation, bool) {
	for _, rule := range r.rules {
		if rule.Field == field {
			return r.evaluate(rule, facts), true
		}
	}
	return FieldValidation{}, false
}

// ValidateAll evaluates every rule in order
func (r *Registry) ValidateAll(facts Facts) []FieldValidation {
	out := make([]FieldValidation, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, r.evaluate(rule, facts))
	}
	return out
}

// AllApplicable returns the verdicts of rules that are not ignored
func (r *Registry) AllApplicable(facts Facts) []FieldValidation {
	var out []FieldValidation
	for _, v := range r.ValidateAll(facts) {
		if !v.Ignored {
			out = append(out, v)
		}
	}
	return out
}

// FirstInvalid returns the first applicable invalid field in form order
func (r *Registry) FirstInvalid(facts Facts) (FieldValidation, bool) {
	for _, v := range r.AllApplicable(facts) {
		if !v.IsValid {
			return v, true
		}
	}
	return FieldValidation{}, false
}

// Valid reports whether every applicable rule passes
func (r *Registry) Valid(facts Facts) bool {
	_, invalid := r.FirstInvalid(facts)
	return !invalid
}

// TriggerAll marks every applicable field visited and sends a blur to its
// bound element so the UI re-renders its verdict
func (r *Registry) TriggerAll(facts Facts, blur func(Field, Target)) {
	for _, v := range r.AllApplicable(facts) {
		facts.State.Visited.Add(v.Field)
		if v.Target != nil && blur != nil {
			blur(v.Field, *v.Target)
		}
	}
}

func (r *Registry) evaluate(rule Rule, facts Facts) FieldValidation {
	v := FieldValidation{Field: rule.Field}
	if rule.IgnoreWhen != nil {
		v.Ignored = rule.IgnoreWhen(facts)
	}

	target, bound := r.bindings[rule.Field]
	if !bound {
		// Unbound fields fail closed
		return v
	}
	v.Target = &target
	v.IsValid = !facts.State.Visited.Has(rule.Field) || rule.Predicate(facts.value(rule.Field), facts)
	return v
}

func checkoutRules() []Rule {
	rules := []Rule{
		{Field: FieldName, Predicate: is(validation.IsFullName)},
		{Field: FieldEmail, Predicate: is(validation.IsEmail)},
		{Field: FieldCPF, Predicate: is(validation.IsTaxID)},
		{Field: FieldPhone, Predicate: is(validation.IsPhone)},
		{
			Field:      FieldBirthDate,
			Predicate:  is(validation.IsBirthDate),
			IgnoreWhen: func(f Facts) bool { return f.value(FieldBirthDate) == "" },
		},
		{Field: FieldPaymentMethod, Predicate: func(v string, _ Facts) bool { return validPaymentMethod(v) }},
		{Field: FieldCardHolder, Predicate: validCardHolder, IgnoreWhen: notCreditCard},
		{Field: FieldCardNumber, Predicate: validCardNumber, IgnoreWhen: notCreditCard},
		{Field: FieldCardExpiry, Predicate: validCardExpiry, IgnoreWhen: notCreditCard},
		{Field: FieldCardCVV, Predicate: validCardCVV, IgnoreWhen: notCreditCard},
		{
			Field:     FieldInstallments,
			Predicate: validInstallments,
			IgnoreWhen: func(f Facts) bool {
				return !f.State.IsCreditCard() || !validPaymentMethod(f.value(FieldPaymentMethod))
			},
		},
	}

	rules = append(rules, addressRules(billingGroup, notCreditCard, func(f Facts) string {
		return f.State.BillingAddressError
	})...)

	rules = append(rules, Rule{
		Field:      FieldDeliveryPlace,
		Predicate:  validDeliveryPlace,
		IgnoreWhen: notCreditCard,
	})

	rules = append(rules, addressRules(shippingGroup, shippingInactive, func(f Facts) string {
		return f.State.ShippingAddressError
	})...)

	rules = append(rules,
		Rule{
			Field:     FieldDeliveryDate,
			Predicate: validDeliveryDate,
			IgnoreWhen: func(f Facts) bool {
				return !validPaymentMethod(f.value(FieldPaymentMethod))
			},
		},
		Rule{
			Field:     FieldDeliveryHour,
			Predicate: validDeliveryHour,
			IgnoreWhen: func(f Facts) bool {
				return !validPaymentMethod(f.value(FieldPaymentMethod)) ||
					!validDeliveryDate(f.value(FieldDeliveryDate), f)
			},
		},
	)
	return rules
}

func addressRules(g addressGroup, ignore func(Facts) bool, lookupError func(Facts) string) []Rule {
	return []Rule{
		{
			Field: g.Cep,
			Predicate: func(v string, f Facts) bool {
				return validation.IsPostalCode(v) && lookupError(f) == ""
			},
			IgnoreWhen: ignore,
		},
		{Field: g.Street, Predicate: is(validation.IsNotBlank), IgnoreWhen: ignore},
		{Field: g.Number, Predicate: is(validation.IsNotBlank), IgnoreWhen: ignore},
		{Field: g.Neighborhood, Predicate: is(validation.IsNotBlank), IgnoreWhen: ignore},
		{Field: g.City, Predicate: is(validation.IsNotBlank), IgnoreWhen: ignore},
		{Field: g.State, Predicate: is(validStateAcronym), IgnoreWhen: ignore},
	}
}

func is(p func(string) bool) func(string, Facts) bool {
	return func(v string, _ Facts) bool { return p(v) }
}

func notCreditCard(f Facts) bool {
	return !f.State.IsCreditCard()
}

// shippingInactive silences the shipping group unless the order ships to a
// separate address: always for PIX, on request for credit card
func shippingInactive(f Facts) bool {
	if f.State.IsPix() {
		return false
	}
	return !(f.State.IsCreditCard() && f.value(FieldDeliveryPlace) == constants.DeliveryPlaceDifferent)
}

func validPaymentMethod(v string) bool {
	return v == constants.PaymentMethodPix || v == constants.PaymentMethodCreditCard
}

func validCardHolder(v string, f Facts) bool {
	return validation.IsFullName(v) && !f.State.CardErrorFor(tokenization.InvalidHolder)
}

func validCardNumber(v string, f Facts) bool {
	return validation.IsCardNumber(v) && !f.State.CardErrorFor(tokenization.InvalidNumber)
}

func validCardExpiry(v string, f Facts) bool {
	return validation.IsCardExpiryValid(v, f.Now) &&
		!f.State.CardErrorFor(tokenization.InvalidExpirationMonth, tokenization.InvalidExpirationYear)
}

func validCardCVV(v string, f Facts) bool {
	return validation.IsSecurityCode(v) && !f.State.CardErrorFor(tokenization.InvalidSecurityCode)
}

func validInstallments(_ string, f Facts) bool {
	_, ok := f.State.SelectedInstallment()
	return ok
}

func validDeliveryPlace(v string, f Facts) bool {
	if v != constants.DeliveryPlaceSame && v != constants.DeliveryPlaceDifferent {
		return false
	}
	return f.State.DeliveryPlaceError == ""
}

func validStateAcronym(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) != 2 {
		return false
	}
	for _, r := range v {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validDeliveryDate(v string, f Facts) bool {
	if v == "" {
		return false
	}
	if f.State.Options == nil {
		return true
	}
	_, ok := f.State.Options.FindDate(v)
	return ok
}

// validDeliveryHour also requires a quotation for the chosen slot
func validDeliveryHour(v string, f Facts) bool {
	if v == "" {
		return false
	}
	if f.State.Options != nil {
		if _, ok := f.State.Options.FindHour(v); !ok {
			return false
		}
	}
	q := f.State.Quotation
	return q != nil && q.Hour == v && q.Date == f.value(FieldDeliveryDate)
}

// cardReady reports whether the typed card passes the local checks, without
// regard to tokenizer feedback
func cardReady(f Facts) bool {
	return validation.IsFullName(f.value(FieldCardHolder)) &&
		validation.IsCardNumber(f.value(FieldCardNumber)) &&
		validation.IsCardExpiryValid(f.value(FieldCardExpiry), f.Now) &&
		validation.IsSecurityCode(f.value(FieldCardCVV))
}

// billingReady reports whether the billing address group passes every rule
func billingReady(f Facts) bool {
	if !validation.IsPostalCode(f.value(FieldBillingCep)) || f.State.BillingAddressError != "" {
		return false
	}
	for _, field := range []Field{FieldBillingStreet, FieldBillingNumber, FieldBillingNeighborhood, FieldBillingCity} {
		if !validation.IsNotBlank(f.value(field)) {
			return false
		}
	}
	return validStateAcronym(f.value(FieldBillingState))
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
