package cashbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	domaincashbox "github.com/tu-usuario/ledger-pro/internal/domain/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// UseCase mantiene la caja diaria: una fila rodante por día calendario.
// Es el único escritor de las líneas manuales y de sus transacciones pareadas
// en el libro financiero; el motor de reversiones pasa siempre por este código.
type UseCase struct {
	txRunner TxRunner
	cashRepo repository.DailyCashboxRepository
	ledgerUC *ledger.UseCase
	auditor  *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, cashRepo repository.DailyCashboxRepository, ledgerUC *ledger.UseCase, auditor *audit.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, cashRepo: cashRepo, ledgerUC: ledgerUC, auditor: auditor}
}

// GetOrCreateInTx devuelve la caja del día, creándola perezosamente con la
// apertura sembrada desde el cierre (o cierre esperado) del día anterior.
// La fila queda bloqueada (SELECT FOR UPDATE) durante la tx del caller.
func (uc *UseCase) GetOrCreateInTx(cashRepo repository.DailyCashboxRepository, date time.Time, now time.Time) (*entity.DailyCashbox, error) {
	day := entity.DayOf(date)
	box, err := cashRepo.GetForUpdate(day)
	if err != nil {
		return nil, err
	}
	if box != nil {
		return box, nil
	}

	opening := decimal.Zero
	prev, err := cashRepo.GetLatestBefore(day)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		opening = domaincashbox.EffectiveClosing(prev)
	}
	box = &entity.DailyCashbox{
		ID:               uuid.New().String(),
		Date:             day,
		OpeningBalance:   opening,
		SalesIncome:      decimal.Zero,
		PurchaseExpenses: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := cashRepo.Create(box); err != nil {
		return nil, err
	}
	return box, nil
}

// GetOrCreate versión con transacción propia.
func (uc *UseCase) GetOrCreate(ctx context.Context, date time.Time) (*entity.DailyCashbox, error) {
	var box *entity.DailyCashbox
	err := uc.txRunner.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, _ repository.LedgerTransactionRepository) error {
		var err error
		box, err = uc.GetOrCreateInTx(cashRepo, date, time.Now())
		return err
	})
	return box, err
}

// ApplyIncomeInTx suma delta al acumulador de ventas del día. El delta puede ser
// negativo: las devoluciones se modelan como ingreso de ventas negativo para que
// "ventas netas" siga teniendo sentido sin campos nuevos en la caja.
// Si el día ya fue conciliado, el monto se redirige al siguiente día sin conciliar.
func (uc *UseCase) ApplyIncomeInTx(cashRepo repository.DailyCashboxRepository, date time.Time, delta decimal.Decimal, now time.Time) error {
	box, err := uc.unreconciledBoxInTx(cashRepo, date, now)
	if err != nil {
		return err
	}
	box.SalesIncome = box.SalesIncome.Add(delta)
	box.UpdatedAt = now
	return cashRepo.Update(box)
}

// ApplyExpenseInTx suma delta al acumulador de compras del día (mismo redirect que ingresos).
func (uc *UseCase) ApplyExpenseInTx(cashRepo repository.DailyCashboxRepository, date time.Time, delta decimal.Decimal, now time.Time) error {
	box, err := uc.unreconciledBoxInTx(cashRepo, date, now)
	if err != nil {
		return err
	}
	box.PurchaseExpenses = box.PurchaseExpenses.Add(delta)
	box.UpdatedAt = now
	return cashRepo.Update(box)
}

// unreconciledBoxInTx devuelve la caja del día, avanzando al día siguiente
// mientras el día esté conciliado (una caja conciliada está congelada).
func (uc *UseCase) unreconciledBoxInTx(cashRepo repository.DailyCashboxRepository, date time.Time, now time.Time) (*entity.DailyCashbox, error) {
	day := entity.DayOf(date)
	for {
		box, err := uc.GetOrCreateInTx(cashRepo, day, now)
		if err != nil {
			return nil, err
		}
		if !box.IsReconciled {
			return box, nil
		}
		day = day.AddDate(0, 0, 1)
	}
}

// ApplyIncome versión con transacción propia.
func (uc *UseCase) ApplyIncome(ctx context.Context, date time.Time, delta decimal.Decimal) error {
	return uc.txRunner.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, _ repository.LedgerTransactionRepository) error {
		return uc.ApplyIncomeInTx(cashRepo, date, delta, time.Now())
	})
}

// ApplyExpense versión con transacción propia.
func (uc *UseCase) ApplyExpense(ctx context.Context, date time.Time, delta decimal.Decimal) error {
	return uc.txRunner.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, _ repository.LedgerTransactionRepository) error {
		return uc.ApplyExpenseInTx(cashRepo, date, delta, time.Now())
	})
}

// AddManualIncome agrega una línea itemizada de ingreso manual y registra su
// transacción MANUAL pareada en el libro financiero, en una sola transacción de BD.
func (uc *UseCase) AddManualIncome(ctx context.Context, date time.Time, amount decimal.Decimal, reason, userID string) (*entity.LedgerTransaction, error) {
	return uc.addManualEntry(ctx, date, amount, reason, "", userID, entity.TransactionKindIncome)
}

// AddManualExpense agrega una línea itemizada de egreso manual con categoría
// (ej. "arriendo") y su transacción MANUAL pareada.
func (uc *UseCase) AddManualExpense(ctx context.Context, date time.Time, amount decimal.Decimal, reason, category, userID string) (*entity.LedgerTransaction, error) {
	return uc.addManualEntry(ctx, date, amount, reason, category, userID, entity.TransactionKindExpense)
}

func (uc *UseCase) addManualEntry(ctx context.Context, date time.Time, amount decimal.Decimal, reason, category, userID, kind string) (*entity.LedgerTransaction, error) {
	if !amount.GreaterThan(decimal.Zero) || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var ledgerTx *entity.LedgerTransaction
	err := uc.txRunner.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, ledgerRepo repository.LedgerTransactionRepository) error {
		now := time.Now()
		box, err := uc.GetOrCreateInTx(cashRepo, date, now)
		if err != nil {
			return err
		}
		if box.IsReconciled {
			return domain.ErrDayReconciled
		}
		line := entity.ManualEntry{
			ID:        uuid.New().String(),
			Amount:    amount,
			Reason:    reason,
			Category:  category,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if kind == entity.TransactionKindIncome {
			box.ManualIncome = append(box.ManualIncome, line)
		} else {
			box.ManualExpenses = append(box.ManualExpenses, line)
		}
		box.UpdatedAt = now
		if err := cashRepo.Update(box); err != nil {
			return err
		}
		ledgerTx, err = uc.ledgerUC.RecordInTx(ledgerRepo, ledger.RecordInput{
			Kind:          kind,
			Amount:        amount,
			Description:   reason,
			ReferenceType: entity.ReferenceManual,
			OccurredAt:    box.Date,
			UserID:        userID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	action := "cashbox.manual-income"
	if kind == entity.TransactionKindExpense {
		action = "cashbox.manual-expense"
	}
	uc.auditor.Record(userID, action, "ledger_transaction", ledgerTx.ID, "", reason)
	return ledgerTx, nil
}

// ReverseTransactionInTx aplica la reversión exacta de una transacción sobre la
// caja de su día y elimina la fila del libro. Es el único camino de reversión:
// si la transacción corresponde a una línea manual {monto, descripción}, la línea
// se quita de la lista itemizada; si no, se decrementa el acumulador del flujo.
func (uc *UseCase) ReverseTransactionInTx(
	cashRepo repository.DailyCashboxRepository,
	ledgerRepo repository.LedgerTransactionRepository,
	tx *entity.LedgerTransaction,
	now time.Time,
) error {
	box, err := uc.GetOrCreateInTx(cashRepo, tx.OccurredAt, now)
	if err != nil {
		return err
	}
	if tx.Kind == entity.TransactionKindIncome {
		if lines, removed := removeManualLine(box.ManualIncome, tx.Amount, tx.Description); removed {
			box.ManualIncome = lines
		} else {
			box.SalesIncome = box.SalesIncome.Sub(tx.Amount)
		}
	} else {
		if lines, removed := removeManualLine(box.ManualExpenses, tx.Amount, tx.Description); removed {
			box.ManualExpenses = lines
		} else {
			box.PurchaseExpenses = box.PurchaseExpenses.Sub(tx.Amount)
		}
	}
	box.UpdatedAt = now
	if err := cashRepo.Update(box); err != nil {
		return err
	}
	return ledgerRepo.Delete(tx.ID)
}

// removeManualLine quita la primera línea que coincide en {monto, razón}.
func removeManualLine(lines []entity.ManualEntry, amount decimal.Decimal, reason string) ([]entity.ManualEntry, bool) {
	for i, l := range lines {
		if l.Amount.Equal(amount) && l.Reason == reason {
			return append(lines[:i:i], lines[i+1:]...), true
		}
	}
	return lines, false
}

// Reconcile congela la caja del día contra el saldo contado manualmente.
// Es terminal: un segundo intento falla con ErrDayReconciled y el primer cierre
// queda intacto.
func (uc *UseCase) Reconcile(ctx context.Context, date time.Time, actualClosing decimal.Decimal, userID, notes string) (*entity.DailyCashbox, error) {
	var box *entity.DailyCashbox
	err := uc.txRunner.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, _ repository.LedgerTransactionRepository) error {
		now := time.Now()
		var err error
		box, err = uc.GetOrCreateInTx(cashRepo, date, now)
		if err != nil {
			return err
		}
		if box.IsReconciled {
			return domain.ErrDayReconciled
		}
		box.IsReconciled = true
		box.ClosingBalance = actualClosing
		box.ReconciledBy = userID
		box.ReconciliationNotes = notes
		box.ReconciledAt = &now
		box.UpdatedAt = now
		return cashRepo.Update(box)
	})
	if err != nil {
		return nil, err
	}
	uc.auditor.Record(userID, "cashbox.reconcile", "cashbox", box.ID, "", notes)
	return box, nil
}

// CurrentBalance devuelve el "dinero en mano": el cierre conciliado del último
// día si existe, o su cierre esperado. Siempre derivado en lectura, nunca cacheado.
func (uc *UseCase) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	latest, err := uc.cashRepo.GetLatest()
	if err != nil {
		return decimal.Zero, err
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return domaincashbox.EffectiveClosing(latest), nil
}

// GetByDate devuelve la caja de un día, o ErrNotFound si nunca se creó.
func (uc *UseCase) GetByDate(ctx context.Context, date time.Time) (*entity.DailyCashbox, error) {
	box, err := uc.cashRepo.GetByDate(entity.DayOf(date))
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.ErrNotFound
	}
	return box, nil
}
