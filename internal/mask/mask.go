// Package mask holds the pure string transformers applied to checkout inputs
// on every keystroke. Each mask keeps only the digits it needs and lays them
// over a fixed pattern, emitting a literal only when a digit follows it.
package mask

import "strings"

const placeholder = '#'

const (
	postalCodePattern = "#####-###"
	taxIDPattern      = "###.###.###-##"
	landlinePattern   = "(##) ####-####"
	mobilePattern     = "(##) #####-####"
	datePattern       = "##/##/####"
	cardNumberPattern = "#### #### #### #### ###"
	cardExpiryPattern = "##/##"
)

// Digits strips everything but ASCII digits
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Apply lays the digits of value over pattern
func Apply(pattern, value string) string {
	digits := Digits(value)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	i := 0
	for _, p := range pattern {
		if i >= len(digits) {
			break
		}
		if p == placeholder {
			b.WriteByte(digits[i])
			i++
			continue
		}
		b.WriteRune(p)
	}
	return b.String()
}

// PostalCode formats a CEP as 00000-000
func PostalCode(s string) string { return Apply(postalCodePattern, s) }

// TaxID formats a CPF as 000.000.000-00
func TaxID(s string) string { return Apply(taxIDPattern, s) }

// Date formats a date as dd/mm/yyyy
func Date(s string) string { return Apply(datePattern, s) }

// CardNumber groups card digits by four
func CardNumber(s string) string { return Apply(cardNumberPattern, s) }

// CardExpiry formats a card expiry as MM/YY
func CardExpiry(s string) string { return Apply(cardExpiryPattern, s) }

// Phone formats landlines as (00) 0000-0000 and mobiles as (00) 00000-0000
func Phone(s string) string {
	if len(Digits(s)) > 10 {
		return Apply(mobilePattern, s)
	}
	return Apply(landlinePattern, s)
}
