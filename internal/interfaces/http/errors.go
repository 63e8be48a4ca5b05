package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
)

// mapError traduce errores de dominio a respuestas HTTP. Centralizado para que
// todos los handlers respondan igual ante el mismo error.
func mapError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		msg := fmt.Sprintf("stock insuficiente: producto %s en %s (pedido %s, disponible %s)",
			insufficient.ProductID, insufficient.Location, insufficient.Requested, insufficient.Available)
		if insufficient.Line >= 0 {
			msg = fmt.Sprintf("%s, línea %d", msg, insufficient.Line)
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: msg})
	}

	var partial *domain.PartialFailureError
	if errors.As(err, &partial) {
		msg := fmt.Sprintf("operación %s falló en el paso %s (completados: %s)",
			partial.Operation, partial.FailedStep, strings.Join(partial.Completed, ", "))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PARTIAL_FAILURE", Message: msg})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "registro duplicado"})
	case errors.Is(err, domain.ErrDayReconciled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_RECONCILED", Message: "el día ya fue conciliado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de estado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
