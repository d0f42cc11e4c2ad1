package handler

import (
	"go-stockroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetInventory lists every product with its quantity. A product with no
// inventory row yet reports quantity null, not zero.
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	rows, err := h.service.ListInventory(c.Query("sort_by"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input service.AdjustStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.AdjustStock(id, &input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": entry})
}

func (h *InventoryHandler) GetStockHistory(c *fiber.Ctx) error {
	entries, err := h.service.ListStockHistory()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entries)
}

func (h *InventoryHandler) GetProductHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	entries, err := h.service.ProductHistory(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entries)
}
