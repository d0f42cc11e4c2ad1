package service

import (
	"fmt"
	"strconv"
	"strings"

	"go-stockroom/internal/repository"
)

// DashboardStats is the overview block: catalog size, how many products sit
// below their threshold, and what the stock on hand cost to purchase.
type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	StockValuation float64 `json:"stock_valuation"`
}

type ReportService interface {
	StockReport() (string, error)
	SupplyReport() (string, error)
	StockMovementReport() (string, error)
	Stats() (*DashboardStats, error)

	// Result sets for CSV/XLSX export.
	StockReportData() ([]string, [][]string, error)
	MovementReportData() ([]string, [][]string, error)
}

type reportService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	supplyRepo    repository.SupplyRepository
	historyRepo   repository.StockHistoryRepository
}

func NewReportService(
	pRepo repository.ProductRepository,
	iRepo repository.InventoryRepository,
	sRepo repository.SupplyRepository,
	hRepo repository.StockHistoryRepository,
) ReportService {
	return &reportService{
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		supplyRepo:    sRepo,
		historyRepo:   hRepo,
	}
}

const reportRule = "--------------------------------------------------"

// StockReport lists every product with quantity and threshold. A missing
// inventory row counts as zero for the threshold check, and products
// strictly below their minimum get a trailing marker.
func (s *reportService) StockReport() (string, error) {
	rows, err := s.inventoryRepo.ListRows("")
	if err != nil {
		return "", classifyStoreErr(err, "inventory", "")
	}

	var b strings.Builder
	b.WriteString("Stock Report\n")
	b.WriteString(reportRule + "\n")
	b.WriteString(fmt.Sprintf("%-20s %-10s %-10s %-10s\n", "Name", "SKU", "Qty", "Min"))
	b.WriteString(reportRule + "\n")
	for _, row := range rows {
		qty := 0
		if row.Quantity != nil {
			qty = *row.Quantity
		}
		marker := ""
		if qty < row.MinStock {
			marker = " !"
		}
		b.WriteString(fmt.Sprintf("%-20s %-10s %-10d %-10d%s\n", row.Name, row.SKU, qty, row.MinStock, marker))
	}
	b.WriteString(reportRule + "\n")
	return b.String(), nil
}

// SupplyReport prints supplies newest first with their line items nested
// beneath each one.
func (s *reportService) SupplyReport() (string, error) {
	supplies, err := s.supplyRepo.FindAll("date_desc")
	if err != nil {
		return "", classifyStoreErr(err, "supply", "")
	}

	var b strings.Builder
	b.WriteString("Supply Report\n")
	b.WriteString(reportRule + "\n")
	b.WriteString(fmt.Sprintf("%-5s %-20s %-15s %-10s\n", "ID", "Supplier", "Date", "Status"))
	b.WriteString(reportRule + "\n")
	for _, supply := range supplies {
		supplierName := ""
		if supply.Supplier != nil {
			supplierName = supply.Supplier.Name
		}
		b.WriteString(fmt.Sprintf("%-5d %-20s %-15s %-10s\n",
			supply.ID, supplierName, supply.Date.Format("2006-01-02"), supply.Status))

		items, err := s.supplyRepo.FindItems(supply.ID)
		if err != nil {
			return "", classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supply.ID), 10))
		}
		for _, item := range items {
			productName := ""
			if item.Product != nil {
				productName = item.Product.Name
			}
			b.WriteString(fmt.Sprintf("    - %s (qty: %d)\n", productName, item.Quantity))
		}
	}
	b.WriteString(reportRule + "\n")
	return b.String(), nil
}

// StockMovementReport prints the full ledger, newest entries first.
func (s *reportService) StockMovementReport() (string, error) {
	entries, err := s.historyRepo.FindAll()
	if err != nil {
		return "", classifyStoreErr(err, "stock history", "")
	}

	var b strings.Builder
	b.WriteString("Stock Movement Report\n")
	b.WriteString(reportRule + "\n")
	b.WriteString(fmt.Sprintf("%-20s %-20s %-10s %-15s\n", "Date", "Name", "Change", "Reason"))
	b.WriteString(reportRule + "\n")
	for _, entry := range entries {
		productName := ""
		if entry.Product != nil {
			productName = entry.Product.Name
		}
		b.WriteString(fmt.Sprintf("%-20s %-20s %-10s %-15s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			productName,
			formatDelta(entry.QuantityChange),
			entry.ChangeReason))
	}
	b.WriteString(reportRule + "\n")
	return b.String(), nil
}

func (s *reportService) Stats() (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProducts, err = s.productRepo.CountAll(); err != nil {
		return nil, classifyStoreErr(err, "product", "")
	}
	if stats.LowStockCount, err = s.productRepo.CountBelowMinStock(); err != nil {
		return nil, classifyStoreErr(err, "product", "")
	}
	if stats.StockValuation, err = s.productRepo.StockValuation(); err != nil {
		return nil, classifyStoreErr(err, "product", "")
	}
	return &stats, nil
}

func (s *reportService) StockReportData() ([]string, [][]string, error) {
	rows, err := s.inventoryRepo.ListRows("")
	if err != nil {
		return nil, nil, classifyStoreErr(err, "inventory", "")
	}

	headers := []string{"Name", "SKU", "Quantity", "Min Stock", "Below Min"}
	var data [][]string
	for _, row := range rows {
		qty := 0
		if row.Quantity != nil {
			qty = *row.Quantity
		}
		below := ""
		if qty < row.MinStock {
			below = "yes"
		}
		data = append(data, []string{
			row.Name, row.SKU, strconv.Itoa(qty), strconv.Itoa(row.MinStock), below,
		})
	}
	return headers, data, nil
}

func (s *reportService) MovementReportData() ([]string, [][]string, error) {
	entries, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, nil, classifyStoreErr(err, "stock history", "")
	}

	headers := []string{"Date", "Product", "Change", "Reason"}
	var data [][]string
	for _, entry := range entries {
		productName := ""
		if entry.Product != nil {
			productName = entry.Product.Name
		}
		data = append(data, []string{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			productName,
			formatDelta(entry.QuantityChange),
			entry.ChangeReason,
		})
	}
	return headers, data, nil
}

func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
