package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.DailyCashboxRepository = (*DailyCashboxRepo)(nil)

// DailyCashboxRepo implementación de la caja diaria sobre PostgreSQL (usable con pool o tx).
// Las líneas manuales viven en columnas JSONB: son de bajo volumen y siempre se
// leen y escriben junto con su día.
type DailyCashboxRepo struct {
	q Querier
}

// NewDailyCashboxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDailyCashboxRepository(q Querier) *DailyCashboxRepo {
	return &DailyCashboxRepo{q: q}
}

// manualEntryRow es la forma JSONB de una línea manual.
type manualEntryRow struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Category  string          `json:"category,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func toRows(lines []entity.ManualEntry) []manualEntryRow {
	out := make([]manualEntryRow, 0, len(lines))
	for _, l := range lines {
		out = append(out, manualEntryRow(l))
	}
	return out
}

func fromRows(rows []manualEntryRow) []entity.ManualEntry {
	out := make([]entity.ManualEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ManualEntry(r))
	}
	return out
}

const cashboxColumns = `id, date, opening_balance, sales_income, purchase_expenses,
		manual_income, manual_expenses, is_reconciled, closing_balance,
		COALESCE(reconciled_by, ''), COALESCE(reconciliation_notes, ''), reconciled_at,
		created_at, updated_at`

// GetByDate obtiene la caja de un día; devuelve nil (sin error) si no existe.
func (r *DailyCashboxRepo) GetByDate(date time.Time) (*entity.DailyCashbox, error) {
	query := `SELECT ` + cashboxColumns + ` FROM daily_cashboxes WHERE date = $1`
	return r.getOne(query, entity.DayOf(date))
}

// GetForUpdate obtiene la caja del día y bloquea su fila (SELECT FOR UPDATE).
func (r *DailyCashboxRepo) GetForUpdate(date time.Time) (*entity.DailyCashbox, error) {
	query := `SELECT ` + cashboxColumns + ` FROM daily_cashboxes WHERE date = $1 FOR UPDATE`
	return r.getOne(query, entity.DayOf(date))
}

// GetLatestBefore devuelve el día más reciente anterior a date (para sembrar la apertura).
func (r *DailyCashboxRepo) GetLatestBefore(date time.Time) (*entity.DailyCashbox, error) {
	query := `SELECT ` + cashboxColumns + `
		FROM daily_cashboxes WHERE date < $1 ORDER BY date DESC LIMIT 1`
	return r.getOne(query, entity.DayOf(date))
}

// GetLatest devuelve el día más reciente registrado.
func (r *DailyCashboxRepo) GetLatest() (*entity.DailyCashbox, error) {
	query := `SELECT ` + cashboxColumns + `
		FROM daily_cashboxes ORDER BY date DESC LIMIT 1`
	return r.getOne(query)
}

func (r *DailyCashboxRepo) getOne(query string, args ...any) (*entity.DailyCashbox, error) {
	var (
		box          entity.DailyCashbox
		incomeJSON   []byte
		expensesJSON []byte
	)
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&box.ID, &box.Date, &box.OpeningBalance, &box.SalesIncome, &box.PurchaseExpenses,
		&incomeJSON, &expensesJSON, &box.IsReconciled, &box.ClosingBalance,
		&box.ReconciledBy, &box.ReconciliationNotes, &box.ReconciledAt,
		&box.CreatedAt, &box.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cashbox: %w", err)
	}
	var income, expenses []manualEntryRow
	if err := json.Unmarshal(incomeJSON, &income); err != nil {
		return nil, fmt.Errorf("decode manual income: %w", err)
	}
	if err := json.Unmarshal(expensesJSON, &expenses); err != nil {
		return nil, fmt.Errorf("decode manual expenses: %w", err)
	}
	box.ManualIncome = fromRows(income)
	box.ManualExpenses = fromRows(expenses)
	return &box, nil
}

// Create inserta la caja de un día nuevo.
func (r *DailyCashboxRepo) Create(box *entity.DailyCashbox) error {
	incomeJSON, expensesJSON, err := encodeManualLines(box)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO daily_cashboxes
			(id, date, opening_balance, sales_income, purchase_expenses,
			 manual_income, manual_expenses, is_reconciled, closing_balance,
			 reconciled_by, reconciliation_notes, reconciled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(context.Background(), query,
		box.ID, entity.DayOf(box.Date), box.OpeningBalance, box.SalesIncome, box.PurchaseExpenses,
		incomeJSON, expensesJSON, box.IsReconciled, box.ClosingBalance,
		nullIfEmpty(box.ReconciledBy), nullIfEmpty(box.ReconciliationNotes), box.ReconciledAt,
		box.CreatedAt, box.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cashbox: %w", err)
	}
	return nil
}

// Update reescribe la fila completa del día (acumuladores, líneas y conciliación).
func (r *DailyCashboxRepo) Update(box *entity.DailyCashbox) error {
	incomeJSON, expensesJSON, err := encodeManualLines(box)
	if err != nil {
		return err
	}
	query := `
		UPDATE daily_cashboxes SET
			opening_balance = $2, sales_income = $3, purchase_expenses = $4,
			manual_income = $5, manual_expenses = $6, is_reconciled = $7,
			closing_balance = $8, reconciled_by = $9, reconciliation_notes = $10,
			reconciled_at = $11, updated_at = $12
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		box.ID, box.OpeningBalance, box.SalesIncome, box.PurchaseExpenses,
		incomeJSON, expensesJSON, box.IsReconciled, box.ClosingBalance,
		nullIfEmpty(box.ReconciledBy), nullIfEmpty(box.ReconciliationNotes), box.ReconciledAt,
		box.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cashbox: %w", err)
	}
	return nil
}

func encodeManualLines(box *entity.DailyCashbox) ([]byte, []byte, error) {
	incomeJSON, err := json.Marshal(toRows(box.ManualIncome))
	if err != nil {
		return nil, nil, fmt.Errorf("encode manual income: %w", err)
	}
	expensesJSON, err := json.Marshal(toRows(box.ManualExpenses))
	if err != nil {
		return nil, nil, fmt.Errorf("encode manual expenses: %w", err)
	}
	return incomeJSON, expensesJSON, nil
}
