package backend

// Result is the normalized outcome of every backend call. Transport failures,
// HTTP error responses and undecodable bodies all surface as Succeeded=false
// with a displayable Message.
type Result[T any] struct {
	Succeeded bool
	Data      T
	Code      string
	Message   string
}

// CodeCanceled marks a result whose request context was canceled
const CodeCanceled = "CANCELED"

// Canceled reports whether the call was abandoned because its context ended
func (r Result[T]) Canceled() bool {
	return r.Code == CodeCanceled
}

func ok[T any](data T) Result[T] {
	return Result[T]{Succeeded: true, Data: data}
}

func fail[T any](code, message string) Result[T] {
	return Result[T]{Code: code, Message: message}
}

// CartItem is a line of the backend cart; Price is in currency units
type CartItem struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
	Image    string  `json:"image,omitempty" yaml:"image,omitempty"`
}

// Cart is the current cart with its subtotal in currency units
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Address is the normalized address returned by the CEP lookup
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// InstallmentOption is one allowed credit card split
type InstallmentOption struct {
	Count int     `json:"installmentsCount"`
	Value float64 `json:"installmentValue"`
}

// DeliveryDate is a selectable delivery day
type DeliveryDate struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	IsPriority bool   `json:"isPriority"`
}

// DeliveryHour is a selectable delivery window
type DeliveryHour struct {
	Hour       string `json:"hour"`
	IsPriority bool   `json:"isPriority"`
}

// DeliveryOptions is the catalog of dates and hours plus the priority surcharge
// and PIX discount percentage
type DeliveryOptions struct {
	Dates       []DeliveryDate `json:"dates"`
	Hours       []DeliveryHour `json:"hours"`
	PriorityFee float64        `json:"priorityFee"`
	PixDiscount float64        `json:"pixDiscount"`
}

// FindDate returns the catalog entry for date
func (o DeliveryOptions) FindDate(date string) (DeliveryDate, bool) {
	for _, d := range o.Dates {
		if d.Date == date {
			return d, true
		}
	}
	return DeliveryDate{}, false
}

// FindHour returns the catalog entry for hour
func (o DeliveryOptions) FindHour(hour string) (DeliveryHour, bool) {
	for _, h := range o.Hours {
		if h.Hour == hour {
			return h, true
		}
	}
	return DeliveryHour{}, false
}

// Subsidy is the shipping-fee reduction available for a CEP
type Subsidy struct {
	Has   bool    `json:"has"`
	Value float64 `json:"value"`
}

// QuoteRequest identifies a delivery slot to price
type QuoteRequest struct {
	Cep          string `json:"cep"`
	DeliveryHour string `json:"deliveryHour"`
	DeliveryDate string `json:"deliveryDate"`
}

// Quotation is the priced delivery slot
type Quotation struct {
	Price     float64 `json:"price"`
	Validator string  `json:"validator"`
}

// CouponRequest asks the backend to validate a coupon for the current buyer
type CouponRequest struct {
	Code                string `json:"code"`
	CPF                 string `json:"cpf"`
	HasSubsidy          bool   `json:"hasSubsidy"`
	DeliveryCep         string `json:"deliveryCep"`
	HasSelectedDelivery bool   `json:"hasSelectedDelivery"`
}

// Coupon is an accepted coupon. Value is a percentage (5 = 5%) when
// IsPercentage, otherwise an amount in currency units.
type Coupon struct {
	Code         string  `json:"code"`
	Value        float64 `json:"value"`
	IsPercentage bool    `json:"isPercentage"`
	CouponType   string  `json:"couponType"`
}

// PaymentReceipt is returned by a successful payment call
type PaymentReceipt struct {
	TransactionID string `json:"transactionId"`
	PixQRCode     string `json:"pixQrCode,omitempty"`
	PixCopyPaste  string `json:"pixCopyPaste,omitempty"`
}

// OrderCustomer identifies the buyer
type OrderCustomer struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	CPF       string `json:"cpf" validate:"required,len=11,numeric"`
	Phone     string `json:"phone" validate:"required,min=10,max=11,numeric"`
	BirthDate string `json:"birthDate,omitempty"`
}

// OrderAddress is a parsed postal address
type OrderAddress struct {
	Cep          string `json:"cep" validate:"required,len=8,numeric"`
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required,len=2"`
}

// OrderDelivery is the chosen delivery slot; Price is in cents
type OrderDelivery struct {
	Date      string `json:"date" validate:"required"`
	Hour      string `json:"hour" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
	Validator string `json:"validator,omitempty"`
}

// OrderCard carries the tokenized card and the chosen installment plan
type OrderCard struct {
	EncryptedCard    string `json:"encryptedCard" validate:"required"`
	Holder           string `json:"holder" validate:"required"`
	Installments     int    `json:"installments" validate:"required,min=1"`
	InstallmentValue int64  `json:"installmentValue" validate:"required,gt=0"`
}

// OrderPayload is the body of payment/process/{method}. Amounts are in cents.
type OrderPayload struct {
	SessionID       string        `json:"sessionId" validate:"required,uuid4"`
	Customer        OrderCustomer `json:"customer"`
	BillingAddress  *OrderAddress `json:"billingAddress,omitempty"`
	ShippingAddress OrderAddress  `json:"shippingAddress"`
	Delivery        OrderDelivery `json:"delivery"`
	CouponCode      string        `json:"couponCode,omitempty"`
	Total           int64         `json:"total" validate:"gte=0"`
	Card            *OrderCard    `json:"card,omitempty"`
}
