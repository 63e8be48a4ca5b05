package cashbox_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ledger-pro/internal/domain/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestNetChange(t *testing.T) {
	box := &entity.DailyCashbox{
		OpeningBalance:   d("1000"),
		SalesIncome:      d("500"),
		PurchaseExpenses: d("120"),
		ManualIncome: []entity.ManualEntry{
			{Amount: d("50"), Reason: "aporte"},
		},
		ManualExpenses: []entity.ManualEntry{
			{Amount: d("200"), Reason: "arriendo"},
			{Amount: d("30"), Reason: "aseo"},
		},
	}

	// 500 - 120 + 50 - 200 - 30 = 200
	assert.True(t, cashbox.NetChange(box).Equal(d("200")), "el movimiento neto debe sumar flujos con signo")
	assert.True(t, cashbox.ExpectedClosing(box).Equal(d("1200")), "cierre esperado = apertura + neto")
}

func TestEffectiveClosing(t *testing.T) {
	now := time.Now()
	box := &entity.DailyCashbox{
		OpeningBalance: d("1000"),
		SalesIncome:    d("300"),
	}

	// Sin conciliar: cierre efectivo = cierre esperado.
	assert.True(t, cashbox.EffectiveClosing(box).Equal(d("1300")), "sin conciliar usa el cierre esperado")

	// Conciliado: manda el saldo contado, aunque difiera del esperado.
	box.IsReconciled = true
	box.ClosingBalance = d("1280")
	box.ReconciledAt = &now
	assert.True(t, cashbox.EffectiveClosing(box).Equal(d("1280")), "conciliado usa el saldo contado")
}

func TestDayOf(t *testing.T) {
	instant := time.Date(2024, 3, 15, 18, 45, 12, 0, time.UTC)
	day := entity.DayOf(instant)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day, "debe truncar a medianoche UTC")

	// Dos instantes del mismo día calendario mapean a la misma caja.
	other := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, day, entity.DayOf(other))
}
