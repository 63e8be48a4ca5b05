package cashbox

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. La línea itemizada de caja y su transacción del libro financiero
// deben existir o eliminarse juntas; este runner lo garantiza.
type TxRunner interface {
	RunCashbox(ctx context.Context, fn func(
		cashRepo repository.DailyCashboxRepository,
		ledgerRepo repository.LedgerTransactionRepository,
	) error) error
}
