package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/spf13/cobra"
)

var (
	addID       string
	addTitle    string
	addPrice    string
	addImage    string
	addCategory string
	addCapacity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and mutate the local cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the cart (repeat to raise quantity)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		id := addID
		if id == "" {
			id = uuid.NewString()
		}

		svc.AddItem(domain.Product{
			ID:           id,
			Title:        addTitle,
			PriceDisplay: addPrice,
			ImageURL:     addImage,
			Category:     addCategory,
			CapacityBTU:  addCapacity,
		})

		fmt.Printf("added %s — %d item(s), total %s\n",
			id, svc.ItemCount(), domain.FormatPrice(svc.TotalAmount()))
		return nil
	},
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cart contents and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		items := svc.Items()
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return nil
		}

		for i, item := range items {
			fmt.Printf("%d. %s x%d @ %s = %s\n",
				i+1, item.Title, item.Quantity, item.PriceDisplay, item.Subtotal().Format())
		}
		fmt.Printf("items: %d, total: %s\n", svc.ItemCount(), domain.FormatPrice(svc.TotalAmount()))
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		svc.RemoveItem(args[0])
		fmt.Printf("%d item(s) left\n", svc.ItemCount())
		return nil
	},
}

var cartQuantityCmd = &cobra.Command{
	Use:   "quantity <product-id> <n>",
	Short: "Set a line item quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity[%s]: %w", args[1], err)
		}

		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		svc.SetQuantity(args[0], n)
		fmt.Printf("%d item(s), total %s\n", svc.ItemCount(), domain.FormatPrice(svc.TotalAmount()))
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		svc.Clear()
		fmt.Println("cart cleared")
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Build the WhatsApp order message and link",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newCartService()
		if err != nil {
			return err
		}
		defer svc.Stop()

		message := checkout.BuildMessage(svc.Items(), svc.TotalAmount())
		fmt.Println(message)
		fmt.Println()
		fmt.Println(checkout.WhatsAppLink(cfg.Checkout.WhatsAppPhone, message))
		return nil
	},
}

func newCartService() (*cart.Service, error) {
	svc, err := cart.NewService(fileStore, cart.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("cart.NewService: %w", err)
	}
	return svc, nil
}

func init() {
	cartAddCmd.Flags().StringVar(&addID, "id", "", "product ID (generated when empty)")
	cartAddCmd.Flags().StringVar(&addTitle, "title", "", "product title")
	cartAddCmd.Flags().StringVar(&addPrice, "price", "", `display price, e.g. "$1.200.000"`)
	cartAddCmd.Flags().StringVar(&addImage, "image", "", "image URL")
	cartAddCmd.Flags().StringVar(&addCategory, "category", "", "product category")
	cartAddCmd.Flags().IntVar(&addCapacity, "capacity", 0, "capacity in BTU")
	_ = cartAddCmd.MarkFlagRequired("title")
	_ = cartAddCmd.MarkFlagRequired("price")

	cartCmd.AddCommand(cartAddCmd, cartListCmd, cartRemoveCmd, cartQuantityCmd, cartClearCmd)
}
