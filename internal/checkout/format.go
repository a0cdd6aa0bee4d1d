package checkout

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way the storefront displays prices
func FormatBRL(amount float64) string {
	return brl.Sprintf("%v %.2f", currency.Symbol(currency.BRL), Round2(amount))
}

// FormattedBreakdown is a Breakdown ready for display
type FormattedBreakdown struct {
	Subtotal        string `json:"subtotal"`
	Shipping        string `json:"shipping"`
	PriorityFee     string `json:"priorityFee"`
	SubsidyDiscount string `json:"subsidyDiscount"`
	CouponDiscount  string `json:"couponDiscount"`
	PixDiscount     string `json:"pixDiscount"`
	Total           string `json:"total"`
}

// Format renders every line of the breakdown
func (b Breakdown) Format() FormattedBreakdown {
	return FormattedBreakdown{
		Subtotal:        FormatBRL(b.Subtotal),
		Shipping:        FormatBRL(b.Shipping),
		PriorityFee:     FormatBRL(b.PriorityFee),
		SubsidyDiscount: FormatBRL(b.SubsidyDiscount),
		CouponDiscount:  FormatBRL(b.CouponDiscount),
		PixDiscount:     FormatBRL(b.PixDiscount),
		Total:           FormatBRL(b.Total),
	}
}
