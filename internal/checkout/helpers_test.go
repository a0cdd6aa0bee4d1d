package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/cyphera/storefront/internal/cart"
	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

const (
	serraCep     = "29163-541"
	vilaVelhaCep = "29101-010"
	testCard     = "4111 1111 1111 1111"
	testBin      = "41111111"
)

func ok[T any](v T) backend.Result[T] {
	return backend.Result[T]{Succeeded: true, Data: v}
}

func failed[T any](code, message string) backend.Result[T] {
	return backend.Result[T]{Code: code, Message: message}
}

func serraAddress() backend.Address {
	return backend.Address{Street: "Rua Sete de Setembro", Neighborhood: "Jardim Limoeiro", City: "Serra", State: "ES"}
}

func vilaVelhaAddress() backend.Address {
	return backend.Address{Street: "Avenida Champagnat", Neighborhood: "Praia da Costa", City: "Vila Velha", State: "ES"}
}

func testOptions() backend.DeliveryOptions {
	return backend.DeliveryOptions{
		Dates: []backend.DeliveryDate{
			{Date: "2026-10-20", Label: "Ter, 20/10", IsPriority: true},
			{Date: "2026-10-21", Label: "Qua, 21/10"},
		},
		Hours: []backend.DeliveryHour{
			{Hour: "08:00-12:00", IsPriority: true},
			{Hour: "13:00-18:00"},
		},
		PriorityFee: 15,
		PixDiscount: 5,
	}
}

func installmentsFor(amount float64) []backend.InstallmentOption {
	return []backend.InstallmentOption{
		{Count: 1, Value: amount},
		{Count: 2, Value: checkout.Round2(amount / 2)},
		{Count: 3, Value: checkout.Round2(amount / 3)},
	}
}

type fixture struct {
	api       *mocks.MockAPI
	presenter *mocks.MockPresenter
	provider  *mocks.MockProvider
	loader    *tokenization.Loader
	c         *checkout.Controller
}

func testConfig() config.CheckoutConfig {
	cfg := config.DefaultCheckoutConfig()
	cfg.FocusDelay = 5 * time.Millisecond
	return cfg
}

func newFixture(t *testing.T, options ...checkout.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		api:       mocks.NewMockAPI(ctrl),
		presenter: mocks.NewMockPresenter(ctrl),
		provider:  mocks.NewMockProvider(ctrl),
	}
	f.loader = tokenization.NewLoader(func() (tokenization.Provider, error) {
		return f.provider, nil
	})

	opts := append([]checkout.Option{
		checkout.WithConfig(testConfig()),
		checkout.WithPresenter(f.presenter),
		checkout.WithClock(func() time.Time { return today }),
	}, options...)
	f.c = checkout.New(f.api, f.loader, opts...)
	t.Cleanup(f.c.Close)
	return f
}

// quiet accepts any presenter call
func (f *fixture) quiet() {
	p := f.presenter.EXPECT()
	p.Blur(gomock.Any(), gomock.Any()).AnyTimes()
	p.ScrollIntoView(gomock.Any()).AnyTimes()
	p.Focus(gomock.Any()).AnyTimes()
	p.ShowLoading().AnyTimes()
	p.HideLoading().AnyTimes()
	p.Alert(gomock.Any()).AnyTimes()
	p.Redirect(gomock.Any()).AnyTimes()
}

func (f *fixture) start(t *testing.T, subtotal float64) {
	t.Helper()
	f.api.EXPECT().GetCart(gomock.Any()).Return(ok(backend.Cart{
		Items:    []backend.CartItem{{ID: "bolo", Name: "Bolo de cenoura", Quantity: 1, Price: subtotal}},
		Subtotal: subtotal,
	}))
	require.NoError(t, f.c.Start(context.Background()))
}

func (f *fixture) fillCustomer() {
	f.c.Set(checkout.FieldName, "Maria da Silva")
	f.c.Set(checkout.FieldEmail, "maria@example.com")
	f.c.Input(checkout.FieldCPF, "52998224725")
	f.c.Input(checkout.FieldPhone, "27998765432")
}

func (f *fixture) fillCard() {
	f.c.Set(checkout.FieldCardHolder, "Maria da Silva")
	f.c.Input(checkout.FieldCardNumber, "4111111111111111")
	f.c.Input(checkout.FieldCardExpiry, "1228")
	f.c.Input(checkout.FieldCardCVV, "123")
}

func (f *fixture) expectTokenization() {
	f.provider.EXPECT().EncryptCard(gomock.Any(), tokenization.Card{
		Number:       testCard,
		Holder:       "Maria da Silva",
		ExpMonth:     "12",
		ExpYear:      "2028",
		SecurityCode: "123",
	}).Return(tokenization.Encrypted{EncryptedCard: "tok-123"}, nil)
}

func (f *fixture) expectOptions() {
	f.api.EXPECT().GetDeliveryOptions(gomock.Any()).Return(ok(testOptions()))
}

func (f *fixture) expectFees() {
	f.api.EXPECT().CalculateFees(gomock.Any(), gomock.Any(), testBin).
		DoAndReturn(func(_ context.Context, amount float64, _ string) backend.Result[[]backend.InstallmentOption] {
			return ok(installmentsFor(amount))
		}).AnyTimes()
}

func tokenizationOK(token string) tokenization.Encrypted {
	return tokenization.Encrypted{EncryptedCard: token}
}

func cartSnapshot(subtotal float64) cart.Snapshot {
	return cart.FromCart(backend.Cart{
		Items:    []backend.CartItem{{ID: "bolo", Name: "Bolo de cenoura", Quantity: 1, Price: subtotal}},
		Subtotal: subtotal,
	}, today)
}
