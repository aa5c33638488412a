package domain

import "fmt"

// Product is a catalog entry as the page layer hands it to the cart.
type Product struct {
	ID           string
	Title        string
	PriceDisplay string
	ImageURL     string
	Category     string
	CapacityBTU  int
}

// CartItem is one product line in the cart with its quantity and the
// price locked in at the time of first add.
type CartItem struct {
	ProductID    string `json:"product_id"`
	Title        string `json:"title"`
	PriceDisplay string `json:"price_display"`
	PriceNumeric int64  `json:"price_numeric"`
	ImageURL     string `json:"image_url"`
	Quantity     int    `json:"quantity"`
	Category     string `json:"category,omitempty"`
	CapacityBTU  int    `json:"capacity_btu,omitempty"`
}

func (i CartItem) Validate() error {
	if i.ProductID == "" {
		return fmt.Errorf("productID is empty")
	}
	if i.Quantity < 1 {
		return fmt.Errorf("quantity[%d] is below 1", i.Quantity)
	}
	if i.PriceNumeric < 0 {
		return fmt.Errorf("priceNumeric[%d] is negative", i.PriceNumeric)
	}
	return nil
}

func (i CartItem) UnitPrice() Money {
	return NewMoney(i.PriceNumeric)
}

func (i CartItem) Subtotal() Money {
	return i.UnitPrice().MulInt(i.Quantity)
}

// Cart holds line items in insertion order. At most one item per
// product ID.
type Cart struct {
	Items []CartItem
}

// ItemCount is the sum of quantities, recomputed on every call.
func (c Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalAmount is the sum of per-line subtotals in whole pesos,
// recomputed on every call.
func (c Cart) TotalAmount() int64 {
	total := NewMoney(0)
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Int64()
}

func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c.Items))

	for idx, item := range c.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item[%d]: %w", idx, err)
		}
		if _, ok := seen[item.ProductID]; ok {
			return fmt.Errorf("item[%d]: duplicate productID[%s]", idx, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}

	return nil
}
