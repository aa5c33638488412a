package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow external changes to the persisted cart",
	Long: `watch prints the cart whenever another process writes the cart
record, the way a second browser tab follows the storage event.
Stops on interrupt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		changes, err := fileStore.Watch(ctx, "cart")
		if err != nil {
			return fmt.Errorf("fileStore.Watch: %w", err)
		}

		fmt.Println("watching cart record, Ctrl-C to stop")
		for range changes {
			printCartSnapshot()
		}
		return nil
	},
}

func printCartSnapshot() {
	var items []domain.CartItem
	if !fileStore.Load("cart", &items) {
		fmt.Println("cart record cleared")
		return
	}

	c := domain.Cart{Items: items}
	fmt.Printf("cart changed: %d item(s), total %s\n",
		c.ItemCount(), domain.FormatPrice(c.TotalAmount()))
}
