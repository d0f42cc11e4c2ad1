package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportLineWith(t *testing.T, report, needle string) string {
	t.Helper()
	for _, line := range strings.Split(report, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("report has no line containing %q:\n%s", needle, report)
	return ""
}

func TestStockReportFlagsBelowThresholdOnly(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	low := env.mustProduct(t, "Green Tea", "SKU-1", "Drinks", 5)
	ok := env.mustProduct(t, "Black Tea", "SKU-2", "Drinks", 3)
	env.mustAdjust(t, low.ID, 2, "count")
	env.mustAdjust(t, ok.ID, 10, "count")

	report, err := env.report.StockReport()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(reportLineWith(t, report, "SKU-1"), "!"))
	assert.False(t, strings.HasSuffix(reportLineWith(t, report, "SKU-2"), "!"))
}

func TestStockReportTreatsMissingRowAsZero(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	// min stock 1, no inventory row at all: counts as zero, flagged
	env.mustProduct(t, "Green Tea", "SKU-1", "Drinks", 1)

	report, err := env.report.StockReport()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(reportLineWith(t, report, "SKU-1"), "!"))
}

func TestSupplyReportNestsItems(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	env.mustSupplier(t, "Acme")
	env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 1)
	supply := env.mustSupply(t, "Acme", "2026-01-15")
	env.mustSupplyItem(t, supply.ID, "Green Tea", 3)

	report, err := env.report.SupplyReport()
	require.NoError(t, err)
	assert.Contains(t, report, "Acme")
	assert.Contains(t, report, "2026-01-15")
	assert.Contains(t, report, "    - Green Tea (qty: 3)")
}

func TestSupplyReportOrdersByDateDescending(t *testing.T) {
	env := newTestEnv(t)
	env.mustSupplier(t, "Acme")
	env.mustSupply(t, "Acme", "2026-01-10")
	env.mustSupply(t, "Acme", "2026-03-02")

	report, err := env.report.SupplyReport()
	require.NoError(t, err)
	assert.Less(t, strings.Index(report, "2026-03-02"), strings.Index(report, "2026-01-10"))
}

func TestStockMovementReportListsLedger(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	product := env.mustProduct(t, "Green Tea", "GT-001", "Drinks", 1)
	env.mustAdjust(t, product.ID, 5, "initial count")
	env.mustAdjust(t, product.ID, 2, "breakage")

	report, err := env.report.StockMovementReport()
	require.NoError(t, err)
	assert.Contains(t, report, "+5")
	assert.Contains(t, report, "-3")
	assert.Contains(t, report, "breakage")
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	low := env.mustProduct(t, "Green Tea", "SKU-1", "Drinks", 5)
	ok := env.mustProduct(t, "Black Tea", "SKU-2", "Drinks", 3)
	env.mustAdjust(t, low.ID, 2, "count")
	env.mustAdjust(t, ok.ID, 10, "count")

	stats, err := env.report.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockCount)
	// both products were created with purchase price 10
	assert.Equal(t, 120.0, stats.StockValuation)
}

func TestStockReportData(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Drinks")
	low := env.mustProduct(t, "Green Tea", "SKU-1", "Drinks", 5)
	env.mustAdjust(t, low.ID, 2, "count")

	headers, data, err := env.report.StockReportData()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "SKU", "Quantity", "Min Stock", "Below Min"}, headers)
	require.Len(t, data, 1)
	assert.Equal(t, []string{"Green Tea", "SKU-1", "2", "5", "yes"}, data[0])
}
