package handler

import (
	"go-stockroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// The three reports are plain fixed-width text, same layout the desktop
// report pane used.

func (h *ReportHandler) GetStockReport(c *fiber.Ctx) error {
	report, err := h.service.StockReport()
	if err != nil {
		return respondErr(c, err)
	}
	return c.Type("txt").SendString(report)
}

func (h *ReportHandler) GetSupplyReport(c *fiber.Ctx) error {
	report, err := h.service.SupplyReport()
	if err != nil {
		return respondErr(c, err)
	}
	return c.Type("txt").SendString(report)
}

func (h *ReportHandler) GetStockMovementReport(c *fiber.Ctx) error {
	report, err := h.service.StockMovementReport()
	if err != nil {
		return respondErr(c, err)
	}
	return c.Type("txt").SendString(report)
}

func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

// ExportStockReport downloads the stock result set. Query param: format
// (csv default, xlsx).
func (h *ReportHandler) ExportStockReport(c *fiber.Ctx) error {
	headers, data, err := h.service.StockReportData()
	if err != nil {
		return respondErr(c, err)
	}

	if c.Query("format") == "xlsx" {
		return exportExcel(c, "Stock", headers, data)
	}
	return exportCSV(c, "stock.csv", headers, data)
}

// ExportMovementReport downloads the stock-movement ledger, same formats.
func (h *ReportHandler) ExportMovementReport(c *fiber.Ctx) error {
	headers, data, err := h.service.MovementReportData()
	if err != nil {
		return respondErr(c, err)
	}

	if c.Query("format") == "xlsx" {
		return exportExcel(c, "StockMovement", headers, data)
	}
	return exportCSV(c, "stock_movement.csv", headers, data)
}
