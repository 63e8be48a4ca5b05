package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ManualEntryRequest cuerpo de POST /api/cashbox/manual-income y manual-expense.
// category aplica solo a egresos (ej. "arriendo").
type ManualEntryRequest struct {
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason"`
	Category string          `json:"category"`
	UserID   string          `json:"user_id"`
}

// ReconcileRequest cuerpo de POST /api/cashbox/reconcile.
type ReconcileRequest struct {
	Date          time.Time       `json:"date"`
	ActualClosing decimal.Decimal `json:"actual_closing"`
	Notes         string          `json:"notes"`
	UserID        string          `json:"user_id"`
}

// ManualEntryResponse una línea manual itemizada.
type ManualEntryResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Category  string          `json:"category,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashboxResponse la caja de un día con sus derivados (cambio neto, cierre esperado).
type CashboxResponse struct {
	ID               string                `json:"id"`
	Date             time.Time             `json:"date"`
	OpeningBalance   decimal.Decimal       `json:"opening_balance"`
	SalesIncome      decimal.Decimal       `json:"sales_income"`
	PurchaseExpenses decimal.Decimal       `json:"purchase_expenses"`
	ManualIncome     []ManualEntryResponse `json:"manual_income"`
	ManualExpenses   []ManualEntryResponse `json:"manual_expenses"`
	NetChange        decimal.Decimal       `json:"net_change"`
	ExpectedClosing  decimal.Decimal       `json:"expected_closing"`
	IsReconciled     bool                  `json:"is_reconciled"`
	ClosingBalance   decimal.Decimal       `json:"closing_balance"`
	ReconciledBy     string                `json:"reconciled_by,omitempty"`
	ReconciledAt     *time.Time            `json:"reconciled_at,omitempty"`
}

// NewCashboxResponse convierte la entidad a su DTO, calculando los derivados.
func NewCashboxResponse(box *entity.DailyCashbox) CashboxResponse {
	manualIncome := make([]ManualEntryResponse, 0, len(box.ManualIncome))
	for _, l := range box.ManualIncome {
		manualIncome = append(manualIncome, ManualEntryResponse(l))
	}
	manualExpenses := make([]ManualEntryResponse, 0, len(box.ManualExpenses))
	for _, l := range box.ManualExpenses {
		manualExpenses = append(manualExpenses, ManualEntryResponse(l))
	}
	return CashboxResponse{
		ID:               box.ID,
		Date:             box.Date,
		OpeningBalance:   box.OpeningBalance,
		SalesIncome:      box.SalesIncome,
		PurchaseExpenses: box.PurchaseExpenses,
		ManualIncome:     manualIncome,
		ManualExpenses:   manualExpenses,
		NetChange:        cashbox.NetChange(box),
		ExpectedClosing:  cashbox.ExpectedClosing(box),
		IsReconciled:     box.IsReconciled,
		ClosingBalance:   box.ClosingBalance,
		ReconciledBy:     box.ReconciledBy,
		ReconciledAt:     box.ReconciledAt,
	}
}

// LedgerTransactionResponse una transacción del libro financiero.
type LedgerTransactionResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	RecordedBy    string          `json:"recorded_by"`
}

// NewLedgerTransactionResponse convierte la entidad a su DTO.
func NewLedgerTransactionResponse(tx *entity.LedgerTransaction) LedgerTransactionResponse {
	return LedgerTransactionResponse{
		ID:            tx.ID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Description:   tx.Description,
		ReferenceType: string(tx.ReferenceType),
		ReferenceID:   tx.ReferenceID,
		OccurredAt:    tx.OccurredAt,
		RecordedBy:    tx.RecordedBy,
	}
}
