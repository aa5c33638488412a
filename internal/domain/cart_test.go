package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartDerived(t *testing.T) {
	cart := domain.Cart{Items: []domain.CartItem{
		{ProductID: uuid.NewString(), PriceNumeric: 1200000, Quantity: 2},
		{ProductID: uuid.NewString(), PriceNumeric: 350000, Quantity: 1},
	}}

	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, int64(2750000), cart.TotalAmount())

	// derived values track the items, they are never cached
	cart.Items[1].Quantity = 4
	assert.Equal(t, 6, cart.ItemCount())
	assert.Equal(t, int64(3800000), cart.TotalAmount())
}

func TestCartDerivedEmpty(t *testing.T) {
	var cart domain.Cart

	assert.Equal(t, 0, cart.ItemCount())
	assert.Equal(t, int64(0), cart.TotalAmount())
}

func TestCartItemSubtotal(t *testing.T) {
	item := domain.CartItem{
		ProductID:    uuid.NewString(),
		PriceNumeric: 1200000,
		Quantity:     2,
	}

	assert.Equal(t, int64(2400000), item.Subtotal().Int64())
	assert.Equal(t, "$2.400.000", item.Subtotal().Format())
}

func TestCartValidate(t *testing.T) {
	valid := func() domain.CartItem {
		return domain.CartItem{
			ProductID:    uuid.NewString(),
			Title:        gofakeit.ProductName(),
			PriceNumeric: int64(gofakeit.Number(0, 5_000_000)),
			Quantity:     gofakeit.Number(1, 5),
		}
	}

	tests := []struct {
		name      string
		cart      domain.Cart
		wantError string
	}{
		{
			name: "well-formed cart: ok",
			cart: domain.Cart{Items: []domain.CartItem{valid(), valid()}},
		},
		{
			name: "empty cart: ok",
			cart: domain.Cart{},
		},
		{
			name: "empty product ID: error",
			cart: domain.Cart{Items: []domain.CartItem{
				{Quantity: 1},
			}},
			wantError: "item[0]: productID is empty",
		},
		{
			name: "zero quantity: error",
			cart: domain.Cart{Items: []domain.CartItem{
				{ProductID: "p1", Quantity: 0},
			}},
			wantError: "item[0]: quantity[0] is below 1",
		},
		{
			name: "negative price: error",
			cart: domain.Cart{Items: []domain.CartItem{
				{ProductID: "p1", Quantity: 1, PriceNumeric: -100},
			}},
			wantError: "item[0]: priceNumeric[-100] is negative",
		},
		{
			name: "duplicate product ID: error",
			cart: domain.Cart{Items: []domain.CartItem{
				{ProductID: "p1", Quantity: 1},
				{ProductID: "p1", Quantity: 2},
			}},
			wantError: "item[1]: duplicate productID[p1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cart.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIdentityValidate(t *testing.T) {
	tests := []struct {
		name      string
		identity  domain.Identity
		wantError string
	}{
		{
			name: "complete identity: ok",
			identity: domain.Identity{
				ID:    uuid.NewString(),
				Email: gofakeit.Email(),
				Name:  gofakeit.Name(),
			},
		},
		{
			name:      "missing id: error",
			identity:  domain.Identity{Email: gofakeit.Email()},
			wantError: "id is empty",
		},
		{
			name:      "missing email: error",
			identity:  domain.Identity{ID: uuid.NewString()},
			wantError: "email is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.identity.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
