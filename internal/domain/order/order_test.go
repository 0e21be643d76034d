package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		OrderNumber:  "ORD-1",
		CustomerName: "Acme",
		OrderDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:       StatusPending,
		Items:        []LineItem{item("Widget", 2, "9.99")},
	}
}

func TestDraftValidate_OK(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())
}

func TestDraftValidate_EmptyItems(t *testing.T) {
	d := validDraft()
	d.Items = nil

	err := d.Validate()
	require.ErrorIs(t, err, ErrEmptyItems)
	assert.True(t, IsInvalid(err))
}

func TestDraftValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing order number", func(d *Draft) { d.OrderNumber = "  " }, "orderNumber"},
		{"missing customer", func(d *Draft) { d.CustomerName = "" }, "customerName"},
		{"missing date", func(d *Draft) { d.OrderDate = time.Time{} }, "orderDate"},
		{"unknown status", func(d *Draft) { d.Status = "shipped" }, "status"},
		{"blank product", func(d *Draft) { d.Items[0].Product = "" }, "items[0].product"},
		{"zero quantity", func(d *Draft) { d.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"negative quantity", func(d *Draft) { d.Items[0].Quantity = -2 }, "items[0].quantity"},
		{
			"negative price",
			func(d *Draft) { d.Items[0].UnitPrice = decimal.RequireFromString("-0.01") },
			"items[0].unitPrice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate()
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.True(t, IsInvalid(err))
		})
	}
}

func TestDraftValidate_SecondItemReported(t *testing.T) {
	d := validDraft()
	d.Items = append(d.Items, item("Gadget", 0, "1.00"))

	err := d.Validate()
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "items[1].quantity", fe.Field)
}

func TestDraftValidate_ZeroPriceAllowed(t *testing.T) {
	d := validDraft()
	d.Items[0].UnitPrice = decimal.Zero
	require.NoError(t, d.Validate())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}
