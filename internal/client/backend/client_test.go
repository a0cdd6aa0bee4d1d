package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyphera/storefront/internal/client/backend"
	httpclient "github.com/cyphera/storefront/internal/client/http"
	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/cyphera/storefront/internal/testbackend"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

func newClient(t *testing.T) (*backend.Client, *testbackend.Server) {
	t.Helper()
	fake := testbackend.New()
	server := httptest.NewServer(fake.Router())
	t.Cleanup(server.Close)

	client := backend.NewClientFromConfig(config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	return client, fake
}

func TestClient_GetCart(t *testing.T) {
	client, _ := newClient(t)

	r := client.GetCart(context.Background())
	require.True(t, r.Succeeded, r.Message)
	assert.Len(t, r.Data.Items, 2)
	assert.Equal(t, 100.0, r.Data.Subtotal)
	assert.Equal(t, 60.0, r.Data.Items[0].Price)
}

func TestClient_LookupAddress(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	r := client.LookupAddress(ctx, "29163-541", true)
	require.True(t, r.Succeeded)
	assert.Equal(t, backend.Address{
		Street:       "Rua Sete de Setembro",
		Neighborhood: "Jardim Limoeiro",
		City:         "Serra",
		State:        "ES",
	}, r.Data)

	notFound := client.LookupAddress(ctx, "99999-999", false)
	assert.False(t, notFound.Succeeded)
	assert.Equal(t, constants.ErrorCodeNotFound, notFound.Code)
	assert.Equal(t, "CEP não encontrado.", notFound.Message)

	outside := client.LookupAddress(ctx, "69900-062", true)
	assert.False(t, outside.Succeeded)
	assert.Equal(t, constants.ErrorCodeOutOfCoverage, outside.Code)
	assert.Equal(t, constants.MsgAddressLookupFailure, outside.Message, "empty server message falls back")

	inside := client.LookupAddress(ctx, "69900-062", false)
	assert.True(t, inside.Succeeded, "coverage only matters in delivery mode")
}

func TestClient_CalculateFees(t *testing.T) {
	client, _ := newClient(t)

	r := client.CalculateFees(context.Background(), 100.00, "4111 1111 1111 1111")
	require.True(t, r.Succeeded, r.Message)
	require.Len(t, r.Data, 3)
	assert.Equal(t, backend.InstallmentOption{Count: 1, Value: 100}, r.Data[0])
	assert.Equal(t, backend.InstallmentOption{Count: 3, Value: 33.34}, r.Data[2])
}

func TestClient_DeliveryOptionsAndSubsidy(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	opts := client.GetDeliveryOptions(ctx)
	require.True(t, opts.Succeeded)
	assert.Equal(t, 15.0, opts.Data.PriorityFee)
	assert.Equal(t, 5.0, opts.Data.PixDiscount)
	d, found := opts.Data.FindDate("2026-10-20")
	assert.True(t, found)
	assert.True(t, d.IsPriority)

	sub := client.GetSubsidy(ctx, "29163-541")
	require.True(t, sub.Succeeded)
	assert.Equal(t, backend.Subsidy{Has: true, Value: 10}, sub.Data)

	none := client.GetSubsidy(ctx, "29101-010")
	require.True(t, none.Succeeded)
	assert.False(t, none.Data.Has)
}

func TestClient_QuoteDelivery(t *testing.T) {
	client, fake := newClient(t)

	r := client.QuoteDelivery(context.Background(), backend.QuoteRequest{Cep: "29163-541", DeliveryDate: "2026-10-21", DeliveryHour: "13:00-18:00"})
	require.True(t, r.Succeeded)
	assert.Equal(t, 15.90, r.Data.Price)
	assert.Equal(t, "29163-541|2026-10-21|13:00-18:00", r.Data.Validator)

	fake.Lock()
	fake.QuoteDelay = time.Second
	fake.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	canceled := client.QuoteDelivery(ctx, backend.QuoteRequest{Cep: "29163-541", DeliveryDate: "2026-10-21", DeliveryHour: "13:00-18:00"})
	assert.False(t, canceled.Succeeded)
	assert.True(t, canceled.Canceled())
}

func TestClient_GetCoupon(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	pct := client.GetCoupon(ctx, backend.CouponRequest{Code: "desconto5", CPF: "529.982.247-25"})
	require.True(t, pct.Succeeded)
	assert.Equal(t, backend.Coupon{Code: "DESCONTO5", Value: 5, IsPercentage: true, CouponType: constants.CouponTypeSubtotal}, pct.Data)

	fixed := client.GetCoupon(ctx, backend.CouponRequest{Code: "VINTE"})
	require.True(t, fixed.Succeeded)
	assert.Equal(t, 20.0, fixed.Data.Value)

	missing := client.GetCoupon(ctx, backend.CouponRequest{Code: "NOPE"})
	assert.False(t, missing.Succeeded)
	assert.Equal(t, "Cupom não encontrado.", missing.Message)
}

func TestClient_ProcessPayment(t *testing.T) {
	client, fake := newClient(t)
	ctx := context.Background()

	payload := backend.OrderPayload{SessionID: "5b0a6a0e-3f7e-4d7c-9f55-3f3d3b9c7a10", Total: 10000}
	r := client.ProcessPayment(ctx, constants.PaymentMethodPix, payload)
	require.True(t, r.Succeeded)
	assert.Contains(t, r.Data.TransactionID, "pix-")

	payments := fake.Payments()
	require.Len(t, payments, 1)
	var got backend.OrderPayload
	require.NoError(t, json.Unmarshal(payments[0].Payload, &got))
	assert.Equal(t, payload.SessionID, got.SessionID)

	fake.Lock()
	fake.FailPayments[constants.PaymentMethodCreditCard] = "Cartão recusado"
	fake.Unlock()
	declined := client.ProcessPayment(ctx, constants.PaymentMethodCreditCard, payload)
	assert.False(t, declined.Succeeded)
	assert.Equal(t, "Cartão recusado", declined.Message)
}

func TestClient_TransportFailure(t *testing.T) {
	client := backend.NewClientFromConfig(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	r := client.GetDeliveryOptions(context.Background())
	assert.False(t, r.Succeeded)
	assert.False(t, r.Canceled())
	assert.Equal(t, constants.MsgDeliveryOptionsFailure, r.Message)
}

func TestClient_SendsUserAgent(t *testing.T) {
	fake := testbackend.New()
	server := httptest.NewServer(fake.Router())
	t.Cleanup(server.Close)

	var agents []string
	recorder := roundTripper(func(req *http.Request) (*http.Response, error) {
		agents = append(agents, req.Header.Get("User-Agent"))
		return http.DefaultTransport.RoundTrip(req)
	})

	client := backend.NewClientFromConfig(
		config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		httpclient.WithTransport(recorder),
	)

	r := client.GetDeliveryOptions(context.Background())
	require.True(t, r.Succeeded)
	assert.Equal(t, []string{constants.UserAgent}, agents)
}

type roundTripper func(*http.Request) (*http.Response, error)

func (f roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestBIN(t *testing.T) {
	assert.Equal(t, "41111111", backend.BIN("4111 1111 1111 1111"))
	assert.Equal(t, "4111", backend.BIN("4111"))
	assert.Equal(t, int64(1999), backend.ToCents(19.99))
	assert.Equal(t, 19.99, backend.FromCents(1999))
}
