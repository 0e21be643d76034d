package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslo/orderdesk/internal/kv"
	"github.com/veslo/orderdesk/internal/store"
)

func newFileBackedStore(t *testing.T) *store.Store {
	t.Helper()
	fs, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store.New(fs)
}

func TestParseItem(t *testing.T) {
	product, quantity, price, err := parseItem("Widget:2:9.99")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product)
	assert.Equal(t, 2, quantity)
	assert.True(t, decimal.RequireFromString("9.99").Equal(price))
}

func TestParseItem_ProductWithColon(t *testing.T) {
	product, quantity, price, err := parseItem("Cable: USB-C:3:4.50")
	require.NoError(t, err)
	assert.Equal(t, "Cable: USB-C", product)
	assert.Equal(t, 3, quantity)
	assert.True(t, decimal.RequireFromString("4.50").Equal(price))
}

func TestParseItem_Malformed(t *testing.T) {
	for _, raw := range []string{"Widget", "Widget:2", "Widget:x:1.00", "Widget:2:abc"} {
		_, _, _, err := parseItem(raw)
		assert.Error(t, err, raw)
	}
}

func TestCreateThenList(t *testing.T) {
	orders := newFileBackedStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	err := runCreate(ctx, &out, orders, []string{
		"-number", "ORD-1",
		"-customer", "Acme",
		"-date", "2024-01-01",
		"-item", "Widget:2:9.99",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "draft total: 19.98")
	assert.Contains(t, out.String(), "total:    19.98")

	out.Reset()
	err = runList(ctx, &out, orders)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ORD-1")
	assert.Contains(t, out.String(), "Acme")
	assert.Contains(t, out.String(), "pending")
}

func TestList_Empty(t *testing.T) {
	var out bytes.Buffer
	err := runList(context.Background(), &out, newFileBackedStore(t))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no orders")
}

func TestShow_ByNumberAndByID(t *testing.T) {
	orders := newFileBackedStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, runCreate(ctx, &out, orders, []string{
		"-number", "ORD-1", "-customer", "Acme", "-date", "2024-01-01",
		"-item", "Widget:2:9.99",
	}))

	all, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	out.Reset()
	require.NoError(t, runShow(ctx, &out, orders, []string{"ORD-1"}))
	assert.Contains(t, out.String(), "Widget")

	out.Reset()
	require.NoError(t, runShow(ctx, &out, orders, []string{all[0].ID}))
	assert.Contains(t, out.String(), "ORD-1")

	err = runShow(ctx, &out, orders, []string{"ORD-404"})
	require.Error(t, err)
}

func TestCreate_ValidationSurfacesPerField(t *testing.T) {
	orders := newFileBackedStore(t)

	var out bytes.Buffer
	err := runCreate(context.Background(), &out, orders, []string{
		"-number", "ORD-1", "-customer", "Acme", "-date", "2024-01-01",
		"-item", "Widget:0:9.99",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].quantity")
}
