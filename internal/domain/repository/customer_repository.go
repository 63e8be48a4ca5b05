package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// CustomerRepository define el puerto para clientes (deuda y billetera).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetForUpdate(id string) (*entity.Customer, error)
	// UpdateBalances fija deuda (balance) y billetera (creditBalance) en un solo paso,
	// para que la liquidación nunca deje ambos positivos.
	UpdateBalances(id string, balance, creditBalance decimal.Decimal) error
}
