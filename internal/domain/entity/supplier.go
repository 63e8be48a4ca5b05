package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor. Balance es lo que el negocio le debe.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
