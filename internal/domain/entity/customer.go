package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente.
// Balance es lo que el cliente debe al negocio; CreditBalance (billetera) es lo
// que el negocio debe al cliente. Invariante: nunca ambos positivos después de
// completar un paso de liquidación.
type Customer struct {
	ID            string
	Name          string
	TaxID         string
	Email         string
	Phone         string
	Balance       decimal.Decimal
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
