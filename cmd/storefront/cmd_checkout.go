package main

import (
	"fmt"
	"strings"

	"github.com/cyphera/storefront/internal/cart"
	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/client/tokenization"
	"github.com/spf13/cobra"
)

var checkoutDryRun bool

var checkoutCmd = &cobra.Command{
	Use:   "checkout [form.yaml]",
	Short: "Run a full checkout against the backend",
	Long: `Types the form into a checkout session, waiting for address lookups,
delivery quotations and installment plans, then submits the order.

Use --dry-run to stop after printing the pricing breakdown and validation.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().BoolVar(&checkoutDryRun, "dry-run", false, "do not submit the order")
}

func newBackendClient() (*backend.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return backend.NewClientFromConfig(cfg.Backend), nil
}

func newFloatingCart(api *backend.Client) *cart.FloatingCart {
	return cart.NewFloatingCart(cart.NewFileStore(cfg.Cart.SnapshotPath), api)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	form, err := readForm(args[0])
	if err != nil {
		return err
	}
	api, err := newBackendClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	c := checkout.New(api,
		tokenization.NewRSALoader(cfg.Tokenization.PublicKey),
		checkout.WithConfig(cfg.Checkout),
		checkout.WithPresenter(consolePresenter{out: out}),
		checkout.WithCartCache(newFloatingCart(api)))
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		return err
	}
	form.fill(c)

	if code := strings.TrimSpace(form.Coupon); code != "" {
		coupon := c.ApplyCoupon(ctx, code)
		if coupon.Applied() {
			fmt.Fprintf(out, "Cupom %s aplicado\n", coupon.Code)
		} else {
			fmt.Fprintf(out, "Cupom %s recusado: %s\n", coupon.Code, coupon.Message)
		}
	}

	printBreakdown(cmd, c.Pricing())
	if checkoutDryRun {
		for _, field := range checkout.AllFields {
			c.Blur(field)
		}
		if invalid, found := c.FirstInvalid(); found {
			fmt.Fprintf(out, "first invalid field: %s\n", invalid.Field)
		}
		return nil
	}

	outcome, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	c.Wait()

	switch outcome.Phase {
	case checkout.PhaseSucceeded:
		fmt.Fprintf(out, "transaction %s\n", outcome.TransactionID)
		return nil
	case checkout.PhaseBlocked:
		return fmt.Errorf("checkout blocked on %s", outcome.Field)
	default:
		return fmt.Errorf("payment failed: %s", outcome.Message)
	}
}
