package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// UseCase registra y consulta transacciones del libro financiero.
// La única mutación además de crear es el delete, reservado al motor de reversiones.
type UseCase struct {
	ledgerRepo repository.LedgerTransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledgerRepo repository.LedgerTransactionRepository) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo}
}

// RecordInput entrada para registrar una transacción.
type RecordInput struct {
	Kind          string
	Amount        decimal.Decimal
	Description   string
	ReferenceType entity.ReferenceType
	ReferenceID   string
	OccurredAt    time.Time
	UserID        string
}

// Record valida y persiste una transacción usando el repositorio propio.
func (uc *UseCase) Record(ctx context.Context, in RecordInput) (*entity.LedgerTransaction, error) {
	return uc.RecordInTx(uc.ledgerRepo, in, time.Now())
}

// RecordInTx valida y persiste una transacción con el repositorio proporcionado
// (misma transacción del caller). Lo usan los orquestadores de venta, compra y caja.
//
// Idempotencia: kind+referenceType+referenceId evita registrar dos veces el
// ingreso de la misma factura. Las entradas MANUAL están exentas: varias líneas
// manuales el mismo día son legítimas.
func (uc *UseCase) RecordInTx(ledgerRepo repository.LedgerTransactionRepository, in RecordInput, now time.Time) (*entity.LedgerTransaction, error) {
	if in.Kind != entity.TransactionKindIncome && in.Kind != entity.TransactionKindExpense {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !in.ReferenceType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.ReferenceType != entity.ReferenceManual && in.ReferenceID != "" {
		exists, err := ledgerRepo.ExistsByReference(in.Kind, in.ReferenceType, in.ReferenceID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	tx := &entity.LedgerTransaction{
		ID:            uuid.New().String(),
		Kind:          in.Kind,
		Amount:        in.Amount,
		Description:   in.Description,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		OccurredAt:    occurredAt,
		RecordedBy:    in.UserID,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Create(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// FindByReference devuelve las transacciones ligadas a un documento origen.
func (uc *UseCase) FindByReference(ctx context.Context, refType entity.ReferenceType, refID string) ([]*entity.LedgerTransaction, error) {
	if !refType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.FindByReference(refType, refID)
}

// ListByDateRange lista transacciones en un rango de fechas (para reportes).
func (uc *UseCase) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.LedgerTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.ledgerRepo.ListByDateRange(from, to, limit, offset)
}
