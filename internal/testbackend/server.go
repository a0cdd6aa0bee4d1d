// Package testbackend is an in-process fake of the storefront's no-code backend.
// It serves the same routes and wire format (integer cents, {code, message}
// error bodies) and is used by client tests, acceptance tests and cmd/fakebackend.
package testbackend

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Address is a CEP fixture in wire format
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	StateAcronym string `json:"state-acronym"`
}

// CartItem is a cart fixture line; Price in cents
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Coupon is a coupon fixture; Value in cents or hundredths of a percent
type Coupon struct {
	Code         string `json:"code"`
	Value        int64  `json:"value"`
	IsPercentage bool   `json:"isPercentage"`
	CouponType   string `json:"couponType"`
}

// Subsidy is a subsidy fixture; Value in cents
type Subsidy struct {
	Has   bool  `json:"has"`
	Value int64 `json:"value"`
}

// DeliveryDate and DeliveryHour mirror the catalog entries
type DeliveryDate struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	IsPriority bool   `json:"isPriority"`
}

type DeliveryHour struct {
	Hour       string `json:"hour"`
	IsPriority bool   `json:"isPriority"`
}

// DeliveryCatalog is the GET delivery response
type DeliveryCatalog struct {
	Dates       []DeliveryDate `json:"dates"`
	Hours       []DeliveryHour `json:"hours"`
	PriorityFee int64          `json:"priorityFee"`
	PixDiscount float64        `json:"pixDiscount"`
}

// Payment records a received payment call
type Payment struct {
	Method  string
	Payload json.RawMessage
}

// Server holds the fixtures. Fields may be changed between requests under Lock/Unlock.
type Server struct {
	sync.Mutex

	Cart            []CartItem
	Addresses       map[string]Address
	OutOfCoverage   map[string]bool
	Catalog         DeliveryCatalog
	QuotePrices     map[string]int64
	DefaultQuote    int64
	QuoteDelay      time.Duration
	Subsidies       map[string]Subsidy
	Coupons         map[string]Coupon
	FailPayments    map[string]string
	MaxInstallments int

	payments   []Payment
	quoteCalls int
}

// New returns a server seeded with realistic fixtures
func New() *Server {
	return &Server{
		Cart: []CartItem{
			{ID: "bolo-cenoura", Name: "Bolo de cenoura", Quantity: 1, Price: 6000},
			{ID: "brigadeiro-cx", Name: "Caixa de brigadeiros", Quantity: 2, Price: 2000},
		},
		Addresses: map[string]Address{
			"29163-541": {Street: "Rua Sete de Setembro", Neighborhood: "Jardim Limoeiro", City: "Serra", StateAcronym: "ES"},
			"29101-010": {Street: "Avenida Champagnat", Neighborhood: "Praia da Costa", City: "Vila Velha", StateAcronym: "ES"},
			"01001-000": {Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", StateAcronym: "SP"},
			"69900-062": {Street: "Rua Marechal Deodoro", Neighborhood: "Centro", City: "Rio Branco", StateAcronym: "AC"},
		},
		OutOfCoverage: map[string]bool{"69900-062": true, "01001-000": true},
		Catalog: DeliveryCatalog{
			Dates: []DeliveryDate{
				{Date: "2026-10-20", Label: "Ter, 20/10", IsPriority: true},
				{Date: "2026-10-21", Label: "Qua, 21/10"},
			},
			Hours: []DeliveryHour{
				{Hour: "08:00-12:00", IsPriority: true},
				{Hour: "13:00-18:00"},
			},
			PriorityFee: 1500,
			PixDiscount: 5,
		},
		QuotePrices:  map[string]int64{"29163-541": 1590, "29101-010": 2290},
		DefaultQuote: 1990,
		Subsidies:    map[string]Subsidy{"29163-541": {Has: true, Value: 1000}},
		Coupons: map[string]Coupon{
			"DESCONTO5":   {Code: "DESCONTO5", Value: 500, IsPercentage: true, CouponType: constants.CouponTypeSubtotal},
			"VINTE":       {Code: "VINTE", Value: 2000, CouponType: constants.CouponTypeSubtotal},
			"FRETEGRATIS": {Code: "FRETEGRATIS", Value: 10000, IsPercentage: true, CouponType: constants.CouponTypeShipping},
		},
		FailPayments:    map[string]string{},
		MaxInstallments: 3,
	}
}

// Router builds the gin engine. allowOrigins enables CORS for browser clients.
func (s *Server) Router(allowOrigins ...string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  allowOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", "Accept", "Authorization", "X-Correlation-ID"},
			ExposeHeaders: []string{"X-Correlation-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/cart", s.getCart)
	r.POST("/cepaddress/:cep/checkout", s.lookupAddress)
	r.POST("/calculatefees", s.calculateFees)
	r.GET("/delivery", s.getDelivery)
	r.GET("/delivery/:cep/subsidy", s.getSubsidy)
	r.POST("/site/checkout-delivery", s.quoteDelivery)
	r.POST("/get_coupon", s.getCoupon)
	r.POST("/payment/process/:method", s.processPayment)
	return r
}

// Payments returns the payment calls received so far
func (s *Server) Payments() []Payment {
	s.Lock()
	defer s.Unlock()
	return append([]Payment(nil), s.payments...)
}

// QuoteCalls returns how many quotation requests were received
func (s *Server) QuoteCalls() int {
	s.Lock()
	defer s.Unlock()
	return s.quoteCalls
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Fake backend request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("correlation_id", c.GetHeader("X-Correlation-ID")),
			zap.Duration("duration", time.Since(start)))
	}
}

func abortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}

func (s *Server) getCart(c *gin.Context) {
	s.Lock()
	defer s.Unlock()

	var subtotal int64
	for _, it := range s.Cart {
		subtotal += it.Price * int64(it.Quantity)
	}
	c.JSON(http.StatusOK, gin.H{"items": s.Cart, "subtotal": subtotal})
}

func (s *Server) lookupAddress(c *gin.Context) {
	var body struct {
		DeliveryMode bool `json:"deliveryMode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Payload inválido")
		return
	}

	cep := c.Param("cep")
	s.Lock()
	addr, found := s.Addresses[cep]
	outside := s.OutOfCoverage[cep]
	s.Unlock()

	if !found {
		abortWithCode(c, http.StatusNotFound, constants.ErrorCodeNotFound, "CEP não encontrado.")
		return
	}
	if body.DeliveryMode && outside {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeOutOfCoverage, "")
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (s *Server) calculateFees(c *gin.Context) {
	var body struct {
		Amount  int64  `json:"amount"`
		CardBin string `json:"cardBin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount <= 0 || len(body.CardBin) < 6 {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Não foi possível calcular as parcelas.")
		return
	}

	s.Lock()
	limit := s.MaxInstallments
	s.Unlock()

	options := make([]gin.H, 0, limit)
	for n := 1; n <= limit; n++ {
		value := (body.Amount + int64(n) - 1) / int64(n)
		options = append(options, gin.H{"installmentsCount": n, "installmentValue": value})
	}
	c.JSON(http.StatusOK, options)
}

func (s *Server) getDelivery(c *gin.Context) {
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Catalog)
}

func (s *Server) getSubsidy(c *gin.Context) {
	s.Lock()
	sub, found := s.Subsidies[c.Param("cep")]
	s.Unlock()
	if !found {
		sub = Subsidy{}
	}
	c.JSON(http.StatusOK, sub)
}

func (s *Server) quoteDelivery(c *gin.Context) {
	var body struct {
		Cep          string `json:"cep"`
		DeliveryHour string `json:"deliveryHour"`
		DeliveryDate string `json:"deliveryDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Cep == "" || body.DeliveryDate == "" || body.DeliveryHour == "" {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Dados de entrega incompletos.")
		return
	}

	s.Lock()
	s.quoteCalls++
	delay := s.QuoteDelay
	price, found := s.QuotePrices[body.Cep]
	if !found {
		price = s.DefaultQuote
	}
	s.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	validator := strings.Join([]string{body.Cep, body.DeliveryDate, body.DeliveryHour}, "|")
	c.JSON(http.StatusOK, gin.H{"total": price, "validator": validator})
}

func (s *Server) getCoupon(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
		CPF  string `json:"cpf"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Code == "" {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Informe o cupom.")
		return
	}

	s.Lock()
	coupon, found := s.Coupons[strings.ToUpper(body.Code)]
	s.Unlock()
	if !found {
		abortWithCode(c, http.StatusNotFound, constants.ErrorCodeNotFound, "Cupom não encontrado.")
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (s *Server) processPayment(c *gin.Context) {
	method := c.Param("method")
	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Payload inválido")
		return
	}

	s.Lock()
	s.payments = append(s.payments, Payment{Method: method, Payload: raw})
	failure, fails := s.FailPayments[method]
	s.Unlock()

	if fails {
		abortWithCode(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", failure)
		return
	}

	switch method {
	case constants.PaymentMethodPix:
		c.JSON(http.StatusOK, gin.H{
			"transactionId": "pix-" + uuid.New().String(),
			"pixCopyPaste":  "00020126580014br.gov.bcb.pix",
		})
	case constants.PaymentMethodCreditCard:
		c.JSON(http.StatusOK, gin.H{"transactionId": "cc-" + uuid.New().String()})
	default:
		abortWithCode(c, http.StatusBadRequest, constants.ErrorCodeBadRequest, "Método de pagamento inválido")
	}
}
