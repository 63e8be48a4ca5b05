package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDayReconciled     = errors.New("el día ya fue conciliado")
)

// InsufficientStockError detalla qué producto y ubicación quedarían en negativo.
// Line indica la línea del lote (0-based) cuando el movimiento viene de ApplyBulk; -1 si no aplica.
type InsufficientStockError struct {
	ProductID string
	Location  string // WAREHOUSE o SHOP
	Requested decimal.Decimal
	Available decimal.Decimal
	Line      int
}

func (e *InsufficientStockError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("stock insuficiente en línea %d: producto %s ubicación %s, solicitado %s, disponible %s",
			e.Line, e.ProductID, e.Location, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente: producto %s ubicación %s, solicitado %s, disponible %s",
		e.ProductID, e.Location, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PartialFailureError indica que un orquestador multi-paso falló en el paso FailedStep
// después de completar Completed. El caller decide si reintenta desde el checkpoint o compensa.
type PartialFailureError struct {
	Operation  string
	Completed  []string
	FailedStep string
	Err        error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("operación %s falló en paso %q (completados: %s): %v",
		e.Operation, e.FailedStep, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
