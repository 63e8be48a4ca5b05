package cashbox

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// NetChange implementa la derivación del movimiento neto del día (servicio de dominio).
// NetChange = SalesIncome - PurchaseExpenses + sum(ManualIncome) - sum(ManualExpenses)
func NetChange(box *entity.DailyCashbox) decimal.Decimal {
	net := box.SalesIncome.Sub(box.PurchaseExpenses)
	for _, e := range box.ManualIncome {
		net = net.Add(e.Amount)
	}
	for _, e := range box.ManualExpenses {
		net = net.Sub(e.Amount)
	}
	return net
}

// ExpectedClosing devuelve el cierre esperado: apertura + movimiento neto.
// Es siempre una derivación en tiempo de lectura, nunca un estado cacheado.
func ExpectedClosing(box *entity.DailyCashbox) decimal.Decimal {
	return box.OpeningBalance.Add(NetChange(box))
}

// EffectiveClosing devuelve el cierre conciliado si el día fue conciliado,
// o el cierre esperado si no. Es el valor que siembra la apertura del día siguiente
// y el que el resto del sistema trata como "dinero en mano".
func EffectiveClosing(box *entity.DailyCashbox) decimal.Decimal {
	if box.IsReconciled {
		return box.ClosingBalance
	}
	return ExpectedClosing(box)
}
