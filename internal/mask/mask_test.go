package mask_test

import (
	"testing"

	"github.com/cyphera/storefront/internal/mask"
	"github.com/stretchr/testify/assert"
)

func typeInto(fn func(string) string, keys string) []string {
	var steps []string
	value := ""
	for _, k := range keys {
		value = fn(value + string(k))
		steps = append(steps, value)
	}
	return steps
}

func TestPostalCode_Incremental(t *testing.T) {
	steps := typeInto(mask.PostalCode, "29163541")
	assert.Equal(t, []string{"2", "29", "291", "2916", "29163", "29163-5", "29163-54", "29163-541"}, steps)
}

func TestCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", mask.CardNumber("4111111111111111"))
	assert.Equal(t, "4111 1", mask.CardNumber("41111"))
	assert.Equal(t, "4111 1111 1111 1111", mask.CardNumber(mask.CardNumber("4111111111111111")))
}

func TestCardExpiry(t *testing.T) {
	assert.Equal(t, "12/28", mask.CardExpiry("1228"))
	assert.Equal(t, "12", mask.CardExpiry("12"))
	assert.Equal(t, "12/2", mask.CardExpiry("122"))
	assert.Equal(t, "12/28", mask.CardExpiry("12/289"))
}

func TestTaxID(t *testing.T) {
	assert.Equal(t, "529.982.247-25", mask.TaxID("52998224725"))
	assert.Equal(t, "529.982", mask.TaxID("529982"))
	assert.Equal(t, "529.982.247-25", mask.TaxID("529.982.247-25"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "(27) 3322-1100", mask.Phone("2733221100"))
	assert.Equal(t, "(27) 99876-5432", mask.Phone("27998765432"))
	assert.Equal(t, "(27", mask.Phone("27"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "31/12/1990", mask.Date("31121990"))
	assert.Equal(t, "31/1", mask.Date("311"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "29163541", mask.Digits("29163-541"))
	assert.Equal(t, "", mask.Digits("abc"))
	assert.Equal(t, "", mask.PostalCode("abc"))
}
