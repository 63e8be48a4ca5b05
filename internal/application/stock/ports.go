package stock

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del movimiento (o del lote completo) y la
// serialización por producto vía bloqueo de fila.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier recibe eventos de stock bajo (sumidero unidireccional, fire-and-forget).
type Notifier interface {
	NotifyLowStock(ctx context.Context, product *entity.Product)
}
