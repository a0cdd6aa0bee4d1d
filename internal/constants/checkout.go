package constants

import "time"

// Payment methods as sent to payment/process/{method}
const (
	PaymentMethodPix        = "pix"
	PaymentMethodCreditCard = "creditcard"
)

// Delivery place choices (credit card path only)
const (
	DeliveryPlaceSame      = "same"
	DeliveryPlaceDifferent = "different"
)

// Coupon basis types
const (
	CouponTypeSubtotal  = "subtotal"
	CouponTypeShipping  = "shipping"
	CouponTypeProductID = "product_id"
)

// Backend error codes returned by the address lookup endpoint
const (
	ErrorCodeNotFound       = "ERROR_CODE_NOT_FOUND"
	ErrorCodeBadRequest     = "ERROR_CODE_BAD_REQUEST"
	ErrorCodeOutOfCoverage  = "ERROR_CODE_OUT_OF_COVERAGE"
	ErrorCodeAccessDenied   = "ERROR_CODE_ACCESS_DENIED"
	ErrorCodeTooManyRequest = "ERROR_CODE_TOO_MANY_REQUESTS"
)

// Checkout defaults, overridable through config
const (
	DefaultFreeShippingThreshold = 300.00
	DefaultFocusDelay            = 300 * time.Millisecond
	DefaultBackendTimeout        = 30 * time.Second
	DefaultPixRedirect           = "/pedido-pix"
	DefaultCreditCardRedirect    = "/pedido-confirmado"
	DefaultCartSnapshotPath      = ".storefront/cart.json"
	DefaultFakeBackendPort       = "8090"

	// BinLength is how many leading card digits identify the issuer for installments
	BinLength = 8
)

// Localized fallback messages (pt-BR)
const (
	MsgGenericDeliveryError   = "Infelizmente ainda não entregamos nessa região."
	MsgAddressNotFound        = "CEP não encontrado."
	MsgDeliveryPlaceError     = "Não entregamos no endereço de cobrança informado."
	MsgPaymentFailure         = "Não foi possível concluir o pagamento. Verifique os dados e tente novamente."
	MsgCartUnavailable        = "Não foi possível carregar o carrinho."
	MsgDeliveryOptionsFailure = "Não foi possível carregar as opções de entrega."
	MsgQuotationFailure       = "Não foi possível calcular o frete."
	MsgSubsidyFailure         = "Não foi possível consultar o subsídio de frete."
	MsgInstallmentsFailure    = "Não foi possível calcular as parcelas."
	MsgCouponFailure          = "Cupom inválido."
	MsgAddressLookupFailure   = "Não foi possível consultar o CEP."
)
