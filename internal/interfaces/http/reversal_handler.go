package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ReversalHandler maneja las peticiones HTTP del motor de reversiones.
type ReversalHandler struct {
	uc *reversal.UseCase
}

// NewReversalHandler construye el handler.
func NewReversalHandler(uc *reversal.UseCase) *ReversalHandler {
	return &ReversalHandler{uc: uc}
}

// undoRequest cuerpo mínimo para identificar al operador.
type undoRequest struct {
	UserID string `json:"user_id"`
}

// Undo revierte una transacción del libro financiero por ID.
func (h *ReversalHandler) Undo(c *fiber.Ctx) error {
	var in undoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Undo(c.Context(), c.Params("id"), in.UserID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transacción revertida"})
}

// byReferenceRequest cuerpo de POST /api/reversal/by-reference.
type byReferenceRequest struct {
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	UserID        string `json:"user_id"`
}

// ByReference revierte todas las transacciones ligadas a un documento origen.
func (h *ReversalHandler) ByReference(c *fiber.Ctx) error {
	var in byReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	reversed, err := h.uc.DeleteByReference(c.Context(), entity.ReferenceType(in.ReferenceType), in.ReferenceID, in.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"reversed": reversed})
}
