package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.LedgerTransactionRepository = (*LedgerTransactionRepo)(nil)

// LedgerTransactionRepo implementación del libro financiero sobre PostgreSQL (usable con pool o tx).
type LedgerTransactionRepo struct {
	q Querier
}

// NewLedgerTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerTransactionRepository(q Querier) *LedgerTransactionRepo {
	return &LedgerTransactionRepo{q: q}
}

// Create inserta una transacción del libro.
func (r *LedgerTransactionRepo) Create(tx *entity.LedgerTransaction) error {
	query := `
		INSERT INTO ledger_transactions
			(id, kind, amount, description, reference_type, reference_id, occurred_at, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Kind, tx.Amount, tx.Description, string(tx.ReferenceType),
		nullIfEmpty(tx.ReferenceID), tx.OccurredAt, tx.RecordedBy, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}

const ledgerColumns = `id, kind, amount, description, reference_type,
		COALESCE(reference_id, ''), occurred_at, recorded_by, created_at`

// GetByID obtiene una transacción; devuelve nil (sin error) si no existe.
func (r *LedgerTransactionRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_transactions WHERE id = $1`
	tx, err := scanLedgerTx(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger transaction: %w", err)
	}
	return tx, nil
}

// FindByReference lista las transacciones ligadas a un documento, en orden de creación.
func (r *LedgerTransactionRepo) FindByReference(refType entity.ReferenceType, refID string) ([]*entity.LedgerTransaction, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM ledger_transactions
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, string(refType), refID)
	if err != nil {
		return nil, fmt.Errorf("find by reference: %w", err)
	}
	defer rows.Close()
	return collectLedgerTxs(rows)
}

// ExistsByReference verifica la llave de idempotencia kind+referenceType+referenceId.
func (r *LedgerTransactionRepo) ExistsByReference(kind string, refType entity.ReferenceType, refID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM ledger_transactions
		WHERE kind = $1 AND reference_type = $2 AND reference_id = $3)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, kind, string(refType), refID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by reference: %w", err)
	}
	return exists, nil
}

// Delete elimina la fila (solo lo invoca el motor de reversiones).
func (r *LedgerTransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ledger_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger transaction: %w", err)
	}
	return nil
}

// ListByDateRange lista transacciones con occurred_at dentro de [from, to].
func (r *LedgerTransactionRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.LedgerTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + ledgerColumns + `
		FROM ledger_transactions
		WHERE occurred_at >= $1 AND occurred_at <= $2
		ORDER BY occurred_at ASC, created_at ASC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by date range: %w", err)
	}
	defer rows.Close()
	return collectLedgerTxs(rows)
}

func scanLedgerTx(row pgx.Row) (*entity.LedgerTransaction, error) {
	var tx entity.LedgerTransaction
	var refType string
	err := row.Scan(&tx.ID, &tx.Kind, &tx.Amount, &tx.Description, &refType,
		&tx.ReferenceID, &tx.OccurredAt, &tx.RecordedBy, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	tx.ReferenceType = entity.ReferenceType(refType)
	return &tx, nil
}

func collectLedgerTxs(rows pgx.Rows) ([]*entity.LedgerTransaction, error) {
	var out []*entity.LedgerTransaction
	for rows.Next() {
		tx, err := scanLedgerTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
