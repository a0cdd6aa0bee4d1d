package checkout_test

import (
	"testing"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/stretchr/testify/assert"
)

func TestStore_ReactionsRunOncePerChange(t *testing.T) {
	s := checkout.NewStore()
	var calls [][2]string
	s.On(checkout.FieldBillingCep, func(old, new string) {
		calls = append(calls, [2]string{old, new})
	})

	assert.True(t, s.Set(checkout.FieldBillingCep, "29163-541"))
	assert.False(t, s.Set(checkout.FieldBillingCep, "29163-541"))
	assert.True(t, s.Set(checkout.FieldBillingCep, ""))

	assert.Equal(t, [][2]string{{"", "29163-541"}, {"29163-541", ""}}, calls)
	assert.Empty(t, s.Get(checkout.FieldBillingCep))
}

func TestStore_WatchersFireOnDerivedChange(t *testing.T) {
	s := checkout.NewStore()
	var seen []string
	s.Watch("pair", func() string {
		return s.Get(checkout.FieldDeliveryDate) + "|" + s.Get(checkout.FieldDeliveryHour)
	}, func(prev, next string) {
		seen = append(seen, next)
	})

	s.Set(checkout.FieldDeliveryDate, "2026-10-20")
	s.Set(checkout.FieldName, "Maria")
	s.Set(checkout.FieldDeliveryHour, "08:00-12:00")
	s.Notify()

	assert.Equal(t, []string{"2026-10-20|", "2026-10-20|08:00-12:00"}, seen)
}

func TestStore_NestedWritesSettle(t *testing.T) {
	s := checkout.NewStore()
	s.On(checkout.FieldShippingCep, func(_, _ string) {
		s.Set(checkout.FieldDeliveryDate, "")
	})
	fired := 0
	s.Watch("date", func() string { return s.Get(checkout.FieldDeliveryDate) }, func(_, _ string) { fired++ })

	s.Set(checkout.FieldDeliveryDate, "2026-10-20")
	s.Set(checkout.FieldShippingCep, "29101-010")

	assert.Empty(t, s.Get(checkout.FieldDeliveryDate))
	assert.Equal(t, 2, fired)
}
