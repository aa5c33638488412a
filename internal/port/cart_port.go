package port

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

type Cart interface {
	AddItem(product domain.Product)
	RemoveItem(productID string)
	SetQuantity(productID string, quantity int)
	Clear()

	Open()
	Close()
	IsOpen() bool

	Items() []domain.CartItem
	ItemCount() int
	TotalAmount() int64
}
