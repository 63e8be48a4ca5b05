package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayOf trunca un instante al inicio de su día calendario en UTC.
// Todas las filas de caja diaria se indexan por este valor.
func DayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// ManualEntry es una línea itemizada de ingreso o egreso manual de la caja diaria.
// Las líneas son itemizadas (no acumuladores) porque son de bajo volumen y
// necesitan deshacer por línea.
type ManualEntry struct {
	ID        string
	Amount    decimal.Decimal // siempre > 0
	Reason    string
	Category  string // solo egresos (ej. "arriendo", "servicios")
	CreatedBy string
	CreatedAt time.Time
}

// DailyCashbox es el resumen rodante de caja de un día calendario.
// Se crea perezosamente con la primera transacción del día, sembrando el saldo
// de apertura desde el cierre (o cierre esperado) del día anterior.
// Una vez conciliada, la fila queda congelada.
type DailyCashbox struct {
	ID               string
	Date             time.Time // truncada a medianoche UTC (DayOf)
	OpeningBalance   decimal.Decimal
	SalesIncome      decimal.Decimal // acumulador; las devoluciones entran como ingreso negativo
	PurchaseExpenses decimal.Decimal // acumulador
	ManualIncome     []ManualEntry
	ManualExpenses   []ManualEntry

	IsReconciled        bool
	ClosingBalance      decimal.Decimal // fijado solo al conciliar
	ReconciledBy        string
	ReconciliationNotes string
	ReconciledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
