package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(product string, quantity int, price string) LineItem {
	return LineItem{
		Product:   product,
		Quantity:  quantity,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestLineTotal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("19.98").Equal(LineTotal(item("Widget", 2, "9.99"))))
	assert.True(t, decimal.Zero.Equal(LineTotal(item("Free", 3, "0"))))
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
	assert.True(t, Total([]LineItem{}).IsZero())
}

func TestTotal_Sum(t *testing.T) {
	items := []LineItem{
		item("Widget", 2, "9.99"),
		item("Gadget", 1, "20.00"),
		item("Sticker", 10, "0.50"),
	}
	require.True(t, decimal.RequireFromString("44.98").Equal(Total(items)))
}

func TestTotal_NoFloatDrift(t *testing.T) {
	// 1000 * 0.01 must be exactly 10, which naive binary floats miss.
	items := make([]LineItem, 1000)
	for i := range items {
		items[i] = item("Penny", 1, "0.01")
	}
	assert.True(t, decimal.RequireFromString("10").Equal(Total(items)))
}

func TestTotal_Idempotent(t *testing.T) {
	items := []LineItem{item("Widget", 3, "1.25"), item("Gadget", 2, "7.10")}
	first := Total(items)
	second := Total(items)
	assert.True(t, first.Equal(second))
}

func TestTotal_PureFold(t *testing.T) {
	// The calculator propagates whatever it is given; rejection of
	// negative values belongs to validation.
	items := []LineItem{{Product: "Refund", Quantity: 1, UnitPrice: decimal.RequireFromString("-5")}}
	assert.True(t, decimal.RequireFromString("-5").Equal(Total(items)))
}
