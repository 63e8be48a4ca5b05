package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos de stock (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos de un producto en orden de aplicación
	// (ascendente), para poder repetirlos desde cero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
