package handler

import (
	"go-stockroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplyHandler struct {
	service service.SupplyService
}

func NewSupplyHandler(s service.SupplyService) *SupplyHandler {
	return &SupplyHandler{service: s}
}

func (h *SupplyHandler) GetSupplies(c *fiber.Ctx) error {
	supplies, err := h.service.ListSupplies(c.Query("sort_by"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(supplies)
}

func (h *SupplyHandler) CreateSupply(c *fiber.Ctx) error {
	var input service.SupplyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supply, err := h.service.CreateSupply(&input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supply created", "data": supply})
}

func (h *SupplyHandler) GetSupplyItems(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supply ID"})
	}

	items, err := h.service.ListSupplyItems(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(items)
}

func (h *SupplyHandler) AddSupplyItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supply ID"})
	}

	var input service.SupplyItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.AddSupplyItem(id, &input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item added to supply", "data": item})
}

// CompleteSupply applies the supply to inventory. Completing an already
// delivered supply reports 200 with already_delivered=true and changes
// nothing.
func (h *SupplyHandler) CompleteSupply(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supply ID"})
	}

	result, err := h.service.CompleteSupply(id)
	if err != nil {
		return respondErr(c, err)
	}
	if result.AlreadyDelivered {
		return c.JSON(fiber.Map{"message": "Supply already delivered", "data": result})
	}
	return c.JSON(fiber.Map{"message": "Supply completed", "data": result})
}
