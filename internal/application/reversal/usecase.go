package reversal

import (
	"context"
	"time"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// UseCase calcula y aplica la inversa exacta de transacciones del libro
// financiero sobre la caja diaria, y elimina la fila original. La reversión pasa
// siempre por el camino compartido del caso de uso de caja (único escritor de
// líneas manuales), nunca toca los dos almacenes por separado.
//
// La reversión financiera NO revierte movimientos de stock: stock y finanzas son
// autoridades distintas y el caller debe pedir la compensación de stock de forma
// explícita y separada.
type UseCase struct {
	ledgerRepo repository.LedgerTransactionRepository
	txRunner   TxRunner
	cashboxUC  *cashbox.UseCase
	auditor    *audit.Recorder
}

// NewUseCase construye el motor de reversiones.
func NewUseCase(ledgerRepo repository.LedgerTransactionRepository, txRunner TxRunner, cashboxUC *cashbox.UseCase, auditor *audit.Recorder) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo, txRunner: txRunner, cashboxUC: cashboxUC, auditor: auditor}
}

// Undo revierte una transacción por ID: si era una línea manual {monto,
// descripción} la quita de la lista itemizada de su día; si no, decrementa el
// acumulador del flujo correspondiente. Luego elimina la fila del libro.
func (uc *UseCase) Undo(ctx context.Context, transactionID, userID string) error {
	err := uc.txRunner.RunReversal(ctx, func(cashRepo repository.DailyCashboxRepository, ledgerRepo repository.LedgerTransactionRepository) error {
		tx, err := ledgerRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		return uc.cashboxUC.ReverseTransactionInTx(cashRepo, ledgerRepo, tx, time.Now())
	})
	if err != nil {
		return err
	}
	uc.auditor.Record(userID, "reversal.undo", "ledger_transaction", transactionID, "", "")
	return nil
}

// DeleteByReference revierte todas las transacciones ligadas a un documento
// origen (se usa al eliminar una factura u orden de compra completa).
// El switch es exhaustivo sobre la unión cerrada de tipos de referencia: un tipo
// nuevo no puede ser ignorado en silencio.
func (uc *UseCase) DeleteByReference(ctx context.Context, refType entity.ReferenceType, refID, userID string) (int, error) {
	switch refType {
	case entity.ReferenceInvoice, entity.ReferencePurchaseOrder, entity.ReferenceSalesReturn, entity.ReferenceDebt, entity.ReferenceManual:
	default:
		return 0, domain.ErrInvalidInput
	}
	if refID == "" {
		return 0, domain.ErrInvalidInput
	}

	reversed := 0
	err := uc.txRunner.RunReversal(ctx, func(cashRepo repository.DailyCashboxRepository, ledgerRepo repository.LedgerTransactionRepository) error {
		txs, err := ledgerRepo.FindByReference(refType, refID)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			return domain.ErrNotFound
		}
		now := time.Now()
		for _, tx := range txs {
			if err := uc.cashboxUC.ReverseTransactionInTx(cashRepo, ledgerRepo, tx, now); err != nil {
				return err
			}
			reversed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.auditor.Record(userID, "reversal.delete-by-reference", string(refType), refID, "", "")
	return reversed, nil
}
