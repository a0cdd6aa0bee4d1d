package checkout

import (
	"github.com/cyphera/storefront/internal/mask"
)

// Field names a logical checkout input
type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldCPF       Field = "cpf"
	FieldPhone     Field = "phone"
	FieldBirthDate Field = "birthDate"

	FieldPaymentMethod Field = "paymentMethod"
	FieldCardHolder    Field = "cardHolder"
	FieldCardNumber    Field = "cardNumber"
	FieldCardExpiry    Field = "cardExpiry"
	FieldCardCVV       Field = "cardCvv"
	FieldInstallments  Field = "installments"

	FieldBillingCep          Field = "billingCep"
	FieldBillingStreet       Field = "billingStreet"
	FieldBillingNumber       Field = "billingNumber"
	FieldBillingComplement   Field = "billingComplement"
	FieldBillingNeighborhood Field = "billingNeighborhood"
	FieldBillingCity         Field = "billingCity"
	FieldBillingState        Field = "billingState"

	FieldDeliveryPlace Field = "deliveryPlace"

	FieldShippingCep          Field = "shippingCep"
	FieldShippingStreet       Field = "shippingStreet"
	FieldShippingNumber       Field = "shippingNumber"
	FieldShippingComplement   Field = "shippingComplement"
	FieldShippingNeighborhood Field = "shippingNeighborhood"
	FieldShippingCity         Field = "shippingCity"
	FieldShippingState        Field = "shippingState"

	FieldDeliveryDate Field = "deliveryDate"
	FieldDeliveryHour Field = "deliveryHour"

	FieldCoupon Field = "coupon"
)

// AllFields lists every field in form order
var AllFields = []Field{
	FieldName, FieldEmail, FieldCPF, FieldPhone, FieldBirthDate,
	FieldPaymentMethod, FieldCardHolder, FieldCardNumber, FieldCardExpiry, FieldCardCVV, FieldInstallments,
	FieldBillingCep, FieldBillingStreet, FieldBillingNumber, FieldBillingComplement,
	FieldBillingNeighborhood, FieldBillingCity, FieldBillingState,
	FieldDeliveryPlace,
	FieldShippingCep, FieldShippingStreet, FieldShippingNumber, FieldShippingComplement,
	FieldShippingNeighborhood, FieldShippingCity, FieldShippingState,
	FieldDeliveryDate, FieldDeliveryHour,
	FieldCoupon,
}

var cardFields = []Field{FieldCardHolder, FieldCardNumber, FieldCardExpiry, FieldCardCVV}

// addressGroup names the sub-fields of a billing or shipping address
type addressGroup struct {
	Cep, Street, Number, Complement, Neighborhood, City, State Field
}

var (
	billingGroup = addressGroup{
		Cep: FieldBillingCep, Street: FieldBillingStreet, Number: FieldBillingNumber,
		Complement: FieldBillingComplement, Neighborhood: FieldBillingNeighborhood,
		City: FieldBillingCity, State: FieldBillingState,
	}
	shippingGroup = addressGroup{
		Cep: FieldShippingCep, Street: FieldShippingStreet, Number: FieldShippingNumber,
		Complement: FieldShippingComplement, Neighborhood: FieldShippingNeighborhood,
		City: FieldShippingCity, State: FieldShippingState,
	}
)

// lookupFields are filled by the CEP lookup
func (g addressGroup) lookupFields() []Field {
	return []Field{g.Street, g.Neighborhood, g.City, g.State}
}

// Masks binds each masked field to its input transformer
var Masks = map[Field]func(string) string{
	FieldCPF:         mask.TaxID,
	FieldPhone:       mask.Phone,
	FieldBirthDate:   mask.Date,
	FieldCardNumber:  mask.CardNumber,
	FieldCardExpiry:  mask.CardExpiry,
	FieldCardCVV:     mask.Digits,
	FieldBillingCep:  mask.PostalCode,
	FieldShippingCep: mask.PostalCode,
}

// Target is the UI element bound to a field
type Target struct {
	ID        string
	TextInput bool
}

// Bindings maps fields to their UI elements
type Bindings map[Field]Target

// DefaultBindings binds every field to an element named after it. Choice
// fields are not text inputs and never receive focus.
func DefaultBindings() Bindings {
	choice := map[Field]bool{
		FieldPaymentMethod: true,
		FieldInstallments:  true,
		FieldDeliveryPlace: true,
		FieldDeliveryDate:  true,
		FieldDeliveryHour:  true,
	}
	b := make(Bindings, len(AllFields))
	for _, f := range AllFields {
		b[f] = Target{ID: "checkout-" + string(f), TextInput: !choice[f]}
	}
	return b
}
