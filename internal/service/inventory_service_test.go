package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockCreatesRowAndLedgerEntry(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	product := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 10)

	entry, err := env.inventory.AdjustStock(product.ID, &AdjustStockInput{
		NewQuantity: iptr(5),
		Reason:      "initial count",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, entry.QuantityChange) // first adjustment counts from zero
	assert.Equal(t, "initial count", entry.ChangeReason)

	qty := env.quantityOf(t, product.ID)
	require.NotNil(t, qty)
	assert.Equal(t, 5, *qty)
}

func TestAdjustStockDeltaAgainstStoredQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	product := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 10)
	env.mustAdjust(t, product.ID, 5, "initial count")

	entry, err := env.inventory.AdjustStock(product.ID, &AdjustStockInput{
		NewQuantity: iptr(2),
		Reason:      "breakage",
	})
	require.NoError(t, err)
	assert.Equal(t, -3, entry.QuantityChange)

	entries, err := env.inventory.ListStockHistory()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, -3, entries[0].QuantityChange)
	assert.Equal(t, "breakage", entries[0].ChangeReason)
	assert.Equal(t, 5, entries[1].QuantityChange)
	require.NotNil(t, entries[0].Product)
	assert.Equal(t, "Green Tea", entries[0].Product.Name)

	qty := env.quantityOf(t, product.ID)
	require.NotNil(t, qty)
	assert.Equal(t, 2, *qty)
}

func TestAdjustStockRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	product := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 10)

	_, err := env.inventory.AdjustStock(product.ID, &AdjustStockInput{
		NewQuantity: iptr(5),
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	entries, err := env.inventory.ListStockHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.AdjustStock(999, &AdjustStockInput{
		NewQuantity: iptr(5),
		Reason:      "count",
	})
	var notFoundErr *ReferenceNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestListInventoryAbsentQuantityIsNil(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	adjusted := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 10)
	untouched := env.mustProduct(t, "Black Tea", "BT-001", "Drinks", 3)
	env.mustAdjust(t, adjusted.ID, 7, "initial count")

	rows, err := env.inventory.ListInventory("")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[uint]*int{}
	for _, row := range rows {
		byID[row.ProductID] = row.Quantity
	}
	require.NotNil(t, byID[adjusted.ID])
	assert.Equal(t, 7, *byID[adjusted.ID])
	assert.Nil(t, byID[untouched.ID])
}

func TestProductHistoryFiltersByProduct(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	a := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 1)
	b := env.mustProduct(t, "Black Tea", "BT-001", "Drinks", 1)
	env.mustAdjust(t, a.ID, 5, "count a")
	env.mustAdjust(t, b.ID, 3, "count b")

	entries, err := env.inventory.ProductHistory(a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].ProductID)
}
