package reversal

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta una reversión en una sola transacción de BD: la caja del día
// y la fila del libro financiero se corrigen juntas o no se corrige nada.
type TxRunner interface {
	RunReversal(ctx context.Context, fn func(
		cashRepo repository.DailyCashboxRepository,
		ledgerRepo repository.LedgerTransactionRepository,
	) error) error
}
