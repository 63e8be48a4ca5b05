// Package notify contiene sumideros de notificaciones de dominio.
package notify

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/pkg/logger"
)

var _ stock.Notifier = (*LogNotifier)(nil)

// LogNotifier emite los eventos de stock bajo al log estructurado.
// Es el sumidero por defecto; un canal real (email, webhook) implementaría el mismo puerto.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock registra el evento; nunca falla ni bloquea la operación que lo originó.
func (n *LogNotifier) NotifyLowStock(ctx context.Context, product *entity.Product) {
	n.log.Warn().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Str("total_qty", product.TotalQty().String()).
		Str("reorder_level", product.ReorderLevel.String()).
		Msg("stock bajo: producto en o bajo el punto de reorden")
}
