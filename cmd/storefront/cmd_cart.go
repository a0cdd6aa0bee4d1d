package main

import (
	"fmt"
	"strconv"

	"github.com/cyphera/storefront/internal/cart"
	"github.com/cyphera/storefront/internal/checkout"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the persisted cart snapshot",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart, fetching it from the backend when no snapshot exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadCart(cmd)
		if err != nil {
			return err
		}
		printCart(cmd, fc.Snapshot())
		fmt.Fprintf(cmd.OutOrStdout(), "%d unidades, %s\n", fc.Count(), checkout.FormatBRL(fc.Subtotal()))
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set [item-id] [quantity]",
	Short: "Change the quantity of a cart item; zero removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		fc, err := loadCart(cmd)
		if err != nil {
			return err
		}
		snap, err := fc.UpdateQuantity(args[0], qty)
		if err != nil {
			return err
		}
		printCart(cmd, snap)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [item-id]",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadCart(cmd)
		if err != nil {
			return err
		}
		snap, err := fc.Remove(args[0])
		if err != nil {
			return err
		}
		printCart(cmd, snap)
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cart snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cart.NewFileStore(cfg.Cart.SnapshotPath).Remove()
	},
}

var cartWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the cart whenever another process changes it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadCart(cmd)
		if err != nil {
			return err
		}
		fc.OnChange(func(snap cart.Snapshot) {
			printCart(cmd, snap)
		})
		w, err := fc.Sync(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Stop()
		printCart(cmd, fc.Snapshot())
		<-w.Done()
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartSetCmd, cartRemoveCmd, cartClearCmd, cartWatchCmd)
}

func loadCart(cmd *cobra.Command) (*cart.FloatingCart, error) {
	api, err := newBackendClient()
	if err != nil {
		return nil, err
	}
	fc := newFloatingCart(api)
	if _, err := fc.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return fc, nil
}

func printCart(cmd *cobra.Command, snap cart.Snapshot) {
	out := cmd.OutOrStdout()
	for _, it := range snap.Items {
		fmt.Fprintf(out, "%-16s %-28s x%-3d %s\n", it.ID, it.Name, it.Quantity, checkout.FormatBRL(it.Price))
	}
	fmt.Fprintf(out, "%d itens, subtotal %s\n", len(snap.Items), checkout.FormatBRL(snap.Cart().Subtotal))
}
