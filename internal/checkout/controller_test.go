package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestController_BillingCepLookupFillsAddress(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, false).Return(ok(serraAddress()))

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	masked := ""
	for _, keystroke := range []string{"2", "29", "291", "2916", "29163", "291635", "2916354", "29163541"} {
		masked = f.c.Input(checkout.FieldBillingCep, keystroke)
	}
	assert.Equal(t, serraCep, masked)
	f.c.Wait()

	snap := f.c.Snapshot()
	want := checkout.FormState{
		checkout.FieldPaymentMethod:       constants.PaymentMethodCreditCard,
		checkout.FieldBillingCep:          serraCep,
		checkout.FieldBillingStreet:       "Rua Sete de Setembro",
		checkout.FieldBillingNeighborhood: "Jardim Limoeiro",
		checkout.FieldBillingCity:         "Serra",
		checkout.FieldBillingState:        "ES",
	}
	if diff := cmp.Diff(want, snap.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, snap.BillingAddressError)
}

func TestController_BillingCepLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), "00000-000", false).
		Return(failed[backend.Address](constants.ErrorCodeNotFound, "CEP não encontrado."))
	f.api.EXPECT().LookupAddress(gomock.Any(), "69900-062", false).
		Return(failed[backend.Address]("SOMETHING_NEW", ""))

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.c.Set(checkout.FieldBillingStreet, "Rua antiga")
	f.c.Input(checkout.FieldBillingCep, "00000000")
	f.c.Wait()

	snap := f.c.Snapshot()
	assert.Equal(t, constants.MsgAddressNotFound, snap.BillingAddressError)
	assert.Empty(t, snap.Form.Get(checkout.FieldBillingStreet))
	assert.True(t, snap.Visited.Has(checkout.FieldBillingCep))
	assert.False(t, f.c.Blur(checkout.FieldBillingCep).IsValid)

	f.c.Input(checkout.FieldBillingCep, "69900062")
	f.c.Wait()
	assert.Equal(t, constants.MsgGenericDeliveryError, f.c.Snapshot().BillingAddressError)
}

func TestController_ShippingCepChangeResetsDeliverySlot(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, false).Return(ok(serraAddress()))
	f.api.EXPECT().LookupAddress(gomock.Any(), vilaVelhaCep, false).Return(ok(vilaVelhaAddress()))
	f.api.EXPECT().GetSubsidy(gomock.Any(), gomock.Any()).Return(ok(backend.Subsidy{})).AnyTimes()
	f.api.EXPECT().QuoteDelivery(gomock.Any(), gomock.Any()).Return(ok(backend.Quotation{Price: 15.9})).AnyTimes()

	f.c.SetPaymentMethod(constants.PaymentMethodPix)
	f.c.Input(checkout.FieldShippingCep, "29163541")
	f.c.Wait()
	f.c.Set(checkout.FieldDeliveryDate, "2026-10-21")
	f.c.Set(checkout.FieldDeliveryHour, "13:00-18:00")
	f.c.Wait()
	require.NotNil(t, f.c.Snapshot().Quotation)

	f.c.Input(checkout.FieldShippingCep, "29101010")
	snap := f.c.Snapshot()
	assert.Empty(t, snap.Form.Get(checkout.FieldDeliveryDate))
	assert.Empty(t, snap.Form.Get(checkout.FieldDeliveryHour))
	assert.Nil(t, snap.Quotation)

	f.c.Wait()
	assert.Equal(t, "Vila Velha", f.c.Snapshot().Form.Get(checkout.FieldShippingCity))
}

func TestController_SwitchingToPixClearsCard(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.provider.EXPECT().EncryptCard(gomock.Any(), gomock.Any()).Return(tokenizationOK("tok"), nil).AnyTimes()
	f.expectFees()

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.fillCard()
	f.c.Set(checkout.FieldDeliveryPlace, constants.DeliveryPlaceDifferent)
	f.c.Wait()
	require.Equal(t, testCard, f.c.Snapshot().Form.Get(checkout.FieldCardNumber))

	f.c.SetPaymentMethod(constants.PaymentMethodPix)
	snap := f.c.Snapshot()
	for _, field := range []checkout.Field{
		checkout.FieldCardHolder, checkout.FieldCardNumber, checkout.FieldCardExpiry, checkout.FieldCardCVV,
		checkout.FieldDeliveryPlace,
	} {
		assert.Empty(t, snap.Form.Get(field), "%s should be cleared", field)
	}
	assert.Empty(t, snap.CardToken)
	assert.Empty(t, snap.Installments)
}

func TestController_SDKAndOptionsLoadOnce(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.api.EXPECT().GetDeliveryOptions(gomock.Any()).Return(ok(testOptions())).Times(1)

	assert.False(t, f.loader.Loaded())
	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.c.Wait()
	f.c.SetPaymentMethod(constants.PaymentMethodPix)
	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.c.Wait()

	assert.True(t, f.loader.Loaded())
	assert.Equal(t, 1, f.loader.Loads())
	require.NotNil(t, f.c.Snapshot().Options)
}

func TestController_DeliveryPlaceSameChecksDeliverability(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), "69900-062", false).Return(ok(backend.Address{
		Street: "Rua Marechal Deodoro", Neighborhood: "Centro", City: "Rio Branco", State: "AC",
	}))
	f.api.EXPECT().LookupAddress(gomock.Any(), "69900-062", true).
		Return(failed[backend.Address](constants.ErrorCodeOutOfCoverage, ""))
	f.api.EXPECT().GetSubsidy(gomock.Any(), "69900-062").Return(ok(backend.Subsidy{}))

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.c.Input(checkout.FieldBillingCep, "69900062")
	f.c.Wait()
	f.c.Set(checkout.FieldBillingNumber, "12")

	f.c.Set(checkout.FieldDeliveryPlace, constants.DeliveryPlaceSame)
	f.c.Wait()

	snap := f.c.Snapshot()
	assert.Equal(t, constants.MsgDeliveryPlaceError, snap.DeliveryPlaceError)
	assert.Equal(t, "Rio Branco", snap.Form.Get(checkout.FieldBillingCity), "billing address is left untouched")
	assert.False(t, f.c.Blur(checkout.FieldDeliveryPlace).IsValid)

	f.c.Set(checkout.FieldDeliveryPlace, constants.DeliveryPlaceDifferent)
	assert.Empty(t, f.c.Snapshot().DeliveryPlaceError)
}

func TestController_BillingChangeResetsSameDeliveryPlace(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, false).Return(ok(serraAddress()))
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, true).Return(ok(serraAddress()))
	f.api.EXPECT().LookupAddress(gomock.Any(), vilaVelhaCep, false).Return(ok(vilaVelhaAddress()))
	f.api.EXPECT().GetSubsidy(gomock.Any(), gomock.Any()).Return(ok(backend.Subsidy{})).AnyTimes()

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.c.Input(checkout.FieldBillingCep, "29163541")
	f.c.Wait()
	f.c.Set(checkout.FieldBillingNumber, "100")
	f.c.Set(checkout.FieldDeliveryPlace, constants.DeliveryPlaceSame)
	f.c.Wait()
	require.Equal(t, constants.DeliveryPlaceSame, f.c.Snapshot().Form.Get(checkout.FieldDeliveryPlace))

	f.c.Input(checkout.FieldBillingCep, "29101010")
	f.c.Wait()
	assert.Empty(t, f.c.Snapshot().Form.Get(checkout.FieldDeliveryPlace))
}

func TestController_SubsidyFollowsShippingCep(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, false).Return(ok(serraAddress()))
	f.api.EXPECT().GetSubsidy(gomock.Any(), serraCep).Return(ok(backend.Subsidy{Has: true, Value: 10}))
	f.api.EXPECT().QuoteDelivery(gomock.Any(), backend.QuoteRequest{
		Cep: serraCep, DeliveryDate: "2026-10-21", DeliveryHour: "13:00-18:00",
	}).Return(ok(backend.Quotation{Price: 15.9, Validator: "v1"}))

	f.c.SetPaymentMethod(constants.PaymentMethodPix)
	f.c.Input(checkout.FieldShippingCep, "29163541")
	f.c.Wait()
	f.c.Set(checkout.FieldDeliveryDate, "2026-10-21")
	f.c.Set(checkout.FieldDeliveryHour, "13:00-18:00")
	f.c.Wait()

	b := f.c.Pricing()
	assert.Equal(t, 15.9, b.Shipping)
	assert.Equal(t, -10.0, b.SubsidyDiscount)
	assert.Equal(t, -5.0, b.PixDiscount)
	assert.Equal(t, 100.9, b.Total)
}

func TestController_QuotationOnlyReflectsLatestRequest(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.api.EXPECT().LookupAddress(gomock.Any(), serraCep, false).Return(ok(serraAddress()))
	f.api.EXPECT().GetSubsidy(gomock.Any(), serraCep).Return(ok(backend.Subsidy{}))

	first := backend.QuoteRequest{Cep: serraCep, DeliveryDate: "2026-10-21", DeliveryHour: "08:00-12:00"}
	second := backend.QuoteRequest{Cep: serraCep, DeliveryDate: "2026-10-21", DeliveryHour: "13:00-18:00"}
	issued := make(chan struct{})
	f.api.EXPECT().QuoteDelivery(gomock.Any(), first).
		DoAndReturn(func(ctx context.Context, _ backend.QuoteRequest) backend.Result[backend.Quotation] {
			close(issued)
			<-ctx.Done()
			// A transport that ignores cancellation and still succeeds
			return ok(backend.Quotation{Price: 99, Validator: "stale"})
		})
	f.api.EXPECT().QuoteDelivery(gomock.Any(), second).Return(ok(backend.Quotation{Price: 15.9, Validator: "fresh"}))

	f.c.SetPaymentMethod(constants.PaymentMethodPix)
	f.c.Input(checkout.FieldShippingCep, "29163541")
	f.c.Wait()

	f.c.Set(checkout.FieldDeliveryDate, "2026-10-21")
	f.c.Set(checkout.FieldDeliveryHour, "08:00-12:00")
	<-issued
	assert.True(t, f.c.Snapshot().Quoting)

	f.c.Set(checkout.FieldDeliveryHour, "13:00-18:00")
	f.c.Wait()

	snap := f.c.Snapshot()
	require.NotNil(t, snap.Quotation)
	assert.Equal(t, "fresh", snap.Quotation.Validator)
	assert.Equal(t, 15.9, snap.Quotation.Price)
	assert.Equal(t, "13:00-18:00", snap.Quotation.Hour)
	assert.False(t, snap.Quoting)
}

func TestController_StaleInstallmentsAreDiscarded(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.expectOptions()
	f.expectTokenization()

	release := make(chan struct{})
	f.api.EXPECT().CalculateFees(gomock.Any(), 100.0, testBin).
		DoAndReturn(func(context.Context, float64, string) backend.Result[[]backend.InstallmentOption] {
			<-release
			return ok(installmentsFor(100))
		})
	f.api.EXPECT().CalculateFees(gomock.Any(), 80.0, testBin).Return(ok(installmentsFor(80)))
	f.api.EXPECT().GetCoupon(gomock.Any(), gomock.Any()).Return(ok(backend.Coupon{
		Code: "VINTE", Value: 20, CouponType: constants.CouponTypeSubtotal,
	}))

	f.c.SetPaymentMethod(constants.PaymentMethodCreditCard)
	f.fillCard()
	require.Equal(t, "tok-123", f.c.Snapshot().CardToken)

	coupon := f.c.ApplyCoupon(context.Background(), "vinte")
	require.True(t, coupon.Applied())
	assert.Equal(t, 80.0, f.c.Pricing().Total)

	require.Eventually(t, func() bool {
		snap := f.c.Snapshot()
		return len(snap.Installments) == 3 && snap.Installments[0].Value == 80
	}, time.Second, 5*time.Millisecond)

	close(release)
	f.c.Wait()

	snap := f.c.Snapshot()
	require.Len(t, snap.Installments, 3)
	assert.Equal(t, 80.0, snap.Installments[0].Value)
}

func TestController_CouponLifecycle(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.start(t, 100)
	f.api.EXPECT().GetCoupon(gomock.Any(), backend.CouponRequest{Code: "DESCONTO5", CPF: "529.982.247-25"}).
		Return(ok(backend.Coupon{Code: "DESCONTO5", Value: 5, IsPercentage: true, CouponType: constants.CouponTypeSubtotal}))
	f.api.EXPECT().GetCoupon(gomock.Any(), gomock.Any()).
		Return(failed[backend.Coupon](constants.ErrorCodeNotFound, "Cupom não encontrado."))

	f.c.Input(checkout.FieldCPF, "52998224725")

	applied := f.c.ApplyCoupon(context.Background(), " DESCONTO5 ")
	require.NotNil(t, applied)
	assert.True(t, applied.Applied())
	assert.Equal(t, -5.0, f.c.Pricing().CouponDiscount)

	rejected := f.c.ApplyCoupon(context.Background(), "NOPE")
	require.NotNil(t, rejected)
	assert.False(t, rejected.Applied())
	assert.Equal(t, "Cupom não encontrado.", rejected.Message)
	assert.Zero(t, f.c.Pricing().CouponDiscount)

	f.c.RemoveCoupon()
	assert.Nil(t, f.c.Snapshot().Coupon)
	assert.Empty(t, f.c.Snapshot().Form.Get(checkout.FieldCoupon))
}

func TestController_StartUsesCartCache(t *testing.T) {
	cache := mocks.NewMockCartCacheForTest(t)
	f := newFixture(t, checkout.WithCartCache(cache))
	f.quiet()

	cache.EXPECT().Load(gomock.Any()).Return(cartSnapshot(150), nil)
	require.NoError(t, f.c.Start(context.Background()))
	assert.Equal(t, 150.0, f.c.Pricing().Subtotal)
}

func TestController_ConcurrentStartLoadsCartOnce(t *testing.T) {
	f := newFixture(t)
	f.quiet()

	release := make(chan struct{})
	f.api.EXPECT().GetCart(gomock.Any()).DoAndReturn(func(context.Context) backend.Result[backend.Cart] {
		<-release
		return ok(backend.Cart{
			Items:    []backend.CartItem{{ID: "bolo", Name: "Bolo de cenoura", Quantity: 1, Price: 80}},
			Subtotal: 80,
		})
	}).Times(1)

	const callers = 4
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() { errs <- f.c.Start(context.Background()) }()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < callers; i++ {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, 80.0, f.c.Pricing().Subtotal)
	require.NoError(t, f.c.Start(context.Background()))
}

func TestController_StartRetriesAfterFailure(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.api.EXPECT().GetCart(gomock.Any()).Return(failed[backend.Cart]("", constants.MsgCartUnavailable))

	assert.ErrorIs(t, f.c.Start(context.Background()), checkout.ErrCartUnavailable)
	f.start(t, 60)
	assert.Equal(t, 60.0, f.c.Pricing().Subtotal)
}

func TestController_StartFailsWithoutCart(t *testing.T) {
	f := newFixture(t)
	f.api.EXPECT().GetCart(gomock.Any()).Return(failed[backend.Cart]("", constants.MsgCartUnavailable))
	f.presenter.EXPECT().Alert(constants.MsgCartUnavailable)

	err := f.c.Start(context.Background())
	assert.ErrorIs(t, err, checkout.ErrCartUnavailable)

	_, err = f.c.Submit(context.Background())
	assert.ErrorIs(t, err, checkout.ErrNotStarted)
}
