package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP del libro de movimientos de stock.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ApplyMovement aplica un movimiento individual.
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.Apply(c.Context(), stock.MovementInput{
		ProductID:          in.ProductID,
		Type:               in.Type,
		Origin:             in.Origin,
		Quantity:           in.Quantity,
		TargetWarehouseQty: in.TargetWarehouseQty,
		TargetShopQty:      in.TargetShopQty,
		Note:               in.Note,
		Reference:          in.Reference,
		UserID:             in.UserID,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// ApplyBulk aplica un lote todo-o-nada de movimientos.
func (h *StockHandler) ApplyBulk(c *fiber.Ctx) error {
	var in dto.ApplyBulkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]stock.BulkLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, stock.BulkLine{ProductID: l.ProductID, Quantity: l.Quantity, Note: l.Note})
	}
	movements, err := h.uc.ApplyBulk(c.Context(), in.Type, in.Origin, in.Note, in.Reference, in.UserID, lines)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponses(movements))
}

// Transfer mueve cantidad entre bodega y tienda.
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.Transfer(c.Context(), in.ProductID, in.ToShop, in.Quantity, in.Note, in.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// Adjust corrige las cantidades al resultado de un conteo físico (nota obligatoria).
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.AdjustPhysicalCount(c.Context(), in.ProductID, in.TargetWarehouseQty, in.TargetShopQty, in.Note, in.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// ListByProduct lista los movimientos de un producto en orden de aplicación.
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movements, err := h.uc.ListByProduct(c.Context(), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": dto.NewStockMovementResponses(movements),
	})
}

// Verify repite el libro del producto desde cero y compara con su estado actual.
func (h *StockHandler) Verify(c *fiber.Ctx) error {
	ok, err := h.uc.VerifyProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": c.Params("productId"), "consistent": ok})
}
