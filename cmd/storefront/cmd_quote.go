package main

import (
	"encoding/json"
	"fmt"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/spf13/cobra"
)

const prioritySlot = "priority"

var quoteFlags struct {
	subtotal         float64
	method           string
	shipping         float64
	priority         bool
	priorityFee      float64
	subsidy          float64
	pixDiscount      float64
	couponValue      float64
	couponPercentage bool
	couponType       string
	asJSON           bool
}

// quoteCmd prices an order without talking to the backend
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the pricing breakdown for an order",
	Long: `Computes subtotal, shipping, priority fee, subsidy, coupon and PIX
discount lines the same way the checkout does.

Example:
  storefront quote --subtotal 100 --method pix --shipping 15.90 --pix-discount 5`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.Float64Var(&quoteFlags.subtotal, "subtotal", 0, "cart subtotal in reais")
	f.StringVar(&quoteFlags.method, "method", "", "payment method (pix or creditcard)")
	f.Float64Var(&quoteFlags.shipping, "shipping", 0, "quoted delivery price")
	f.BoolVar(&quoteFlags.priority, "priority", false, "deliver in a priority slot")
	f.Float64Var(&quoteFlags.priorityFee, "priority-fee", 0, "fee charged for priority slots")
	f.Float64Var(&quoteFlags.subsidy, "subsidy", 0, "shipping subsidy for the delivery CEP")
	f.Float64Var(&quoteFlags.pixDiscount, "pix-discount", 0, "PIX discount percentage")
	f.Float64Var(&quoteFlags.couponValue, "coupon-value", 0, "coupon value (percentage or reais)")
	f.BoolVar(&quoteFlags.couponPercentage, "coupon-percentage", false, "coupon value is a percentage")
	f.StringVar(&quoteFlags.couponType, "coupon-type", constants.CouponTypeSubtotal, "coupon basis (subtotal or shipping)")
	f.BoolVar(&quoteFlags.asJSON, "json", false, "print JSON")
}

func runQuote(cmd *cobra.Command, args []string) error {
	in := checkout.PricingInput{
		Subtotal:              quoteFlags.subtotal,
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		PaymentMethod:         quoteFlags.method,
		Options: &backend.DeliveryOptions{
			PriorityFee: quoteFlags.priorityFee,
			PixDiscount: quoteFlags.pixDiscount,
		},
	}
	if quoteFlags.shipping > 0 {
		in.Quotation = &checkout.DeliveryQuotation{Price: quoteFlags.shipping}
	}
	if quoteFlags.priority {
		in.DeliveryDate, in.DeliveryHour = prioritySlot, prioritySlot
		in.Options.Dates = []backend.DeliveryDate{{Date: prioritySlot, IsPriority: true}}
		in.Options.Hours = []backend.DeliveryHour{{Hour: prioritySlot, IsPriority: true}}
	}
	if quoteFlags.subsidy > 0 {
		in.Subsidy = backend.Subsidy{Has: true, Value: quoteFlags.subsidy}
	}
	if quoteFlags.couponValue > 0 {
		in.Coupon = &checkout.Coupon{
			Code:         "CLI",
			Value:        quoteFlags.couponValue,
			IsPercentage: quoteFlags.couponPercentage,
			Type:         quoteFlags.couponType,
		}
	}

	b := checkout.ComputePricing(in)
	if quoteFlags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}
	printBreakdown(cmd, b)
	return nil
}

func printBreakdown(cmd *cobra.Command, b checkout.Breakdown) {
	f := b.Format()
	out := cmd.OutOrStdout()
	lines := []struct{ label, value string }{
		{"Subtotal", f.Subtotal},
		{"Frete", f.Shipping},
		{"Taxa prioritária", f.PriorityFee},
		{"Subsídio de frete", f.SubsidyDiscount},
		{"Cupom", f.CouponDiscount},
		{"Desconto PIX", f.PixDiscount},
		{"Total", f.Total},
	}
	for _, l := range lines {
		fmt.Fprintf(out, "%-18s %s\n", l.label, l.value)
	}
}
