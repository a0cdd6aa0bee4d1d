package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/cyphera/storefront/internal/testbackend"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func useConfig(t *testing.T, backendURL string) {
	t.Helper()
	cfg = &config.Config{
		Stage:    "test",
		Backend:  config.BackendConfig{BaseURL: backendURL, Timeout: 5 * time.Second},
		Cart:     config.CartConfig{SnapshotPath: filepath.Join(t.TempDir(), "cart.json")},
		Checkout: config.DefaultCheckoutConfig(),
	}
	t.Cleanup(func() { cfg = nil })
}

func TestQuoteCmd(t *testing.T) {
	useConfig(t, "")
	saved := quoteFlags
	defer func() { quoteFlags = saved }()

	quoteFlags.subtotal = 100
	quoteFlags.method = "pix"
	quoteFlags.shipping = 15.9
	quoteFlags.priority = true
	quoteFlags.priorityFee = 15
	quoteFlags.subsidy = 10
	quoteFlags.pixDiscount = 5
	quoteFlags.asJSON = true

	cmd, out := testCommand(t)
	require.NoError(t, runQuote(cmd, nil))

	var b checkout.Breakdown
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, checkout.Breakdown{
		Subtotal:        100,
		Shipping:        15.9,
		PriorityFee:     15,
		SubsidyDiscount: -10,
		PixDiscount:     -5,
		Total:           115.9,
	}, b)
}

func TestValidateCmd(t *testing.T) {
	useConfig(t, "")

	t.Run("complete form", func(t *testing.T) {
		cmd, out := testCommand(t)
		require.NoError(t, runValidate(cmd, []string{"testdata/pix.yaml"}))
		assert.Contains(t, out.String(), "form is valid")
	})

	t.Run("missing phone", func(t *testing.T) {
		cmd, out := testCommand(t)
		err := runValidate(cmd, []string{"testdata/incomplete.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
		assert.Contains(t, out.String(), "INVALID")
	})

	t.Run("unknown field", func(t *testing.T) {
		cmd, _ := testCommand(t)
		err := runValidate(cmd, []string{"testdata/unknown.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nickname")
	})
}

func TestCheckoutCmd_PlacesPixOrder(t *testing.T) {
	fake := testbackend.New()
	server := httptest.NewServer(fake.Router())
	defer server.Close()
	useConfig(t, server.URL)

	cmd, out := testCommand(t)
	require.NoError(t, runCheckout(cmd, []string{"testdata/pix.yaml"}))

	assert.Contains(t, out.String(), "Cupom DESCONTO5 aplicado")
	assert.Contains(t, out.String(), "transaction pix-")

	payments := fake.Payments()
	require.Len(t, payments, 1)
	var payload struct {
		Total      int64  `json:"total"`
		CouponCode string `json:"couponCode"`
	}
	require.NoError(t, json.Unmarshal(payments[0].Payload, &payload))
	assert.Equal(t, int64(9590), payload.Total)
	assert.Equal(t, "DESCONTO5", payload.CouponCode)

	_, err := os.Stat(cfg.Cart.SnapshotPath)
	assert.True(t, os.IsNotExist(err), "cart snapshot is cleared after payment")
}

func TestCheckoutCmd_DryRunDoesNotPay(t *testing.T) {
	fake := testbackend.New()
	server := httptest.NewServer(fake.Router())
	defer server.Close()
	useConfig(t, server.URL)

	checkoutDryRun = true
	defer func() { checkoutDryRun = false }()

	cmd, out := testCommand(t)
	require.NoError(t, runCheckout(cmd, []string{"testdata/incomplete.yaml"}))
	assert.Contains(t, out.String(), "first invalid field: phone")
	assert.Empty(t, fake.Payments())
}

func TestCheckoutCmd_BlankCouponIsIgnored(t *testing.T) {
	fake := testbackend.New()
	server := httptest.NewServer(fake.Router())
	defer server.Close()
	useConfig(t, server.URL)

	checkoutDryRun = true
	defer func() { checkoutDryRun = false }()

	cmd, out := testCommand(t)
	require.NoError(t, runCheckout(cmd, []string{"testdata/blank_coupon.yaml"}))
	assert.NotContains(t, out.String(), "aplicado")
	assert.NotContains(t, out.String(), "recusado")
	assert.Contains(t, out.String(), "first invalid field: phone")
	assert.Empty(t, fake.Payments())
}
