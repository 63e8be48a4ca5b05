package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, COALESCE(tax_id, ''), COALESCE(email, ''),
		COALESCE(phone, ''), balance, credit_balance, created_at, updated_at`

// Create inserta un cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers
			(id, name, tax_id, email, phone, balance, credit_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		c.Balance, c.CreditBalance, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente; devuelve nil (sin error) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene el cliente y bloquea su fila (SELECT FOR UPDATE).
func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *CustomerRepo) getOne(query string, args ...any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone,
		&c.Balance, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// UpdateBalances fija deuda y billetera en un solo paso.
func (r *CustomerRepo) UpdateBalances(id string, balance, creditBalance decimal.Decimal) error {
	query := `
		UPDATE customers SET balance = $2, credit_balance = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, balance, creditBalance)
	if err != nil {
		return fmt.Errorf("update customer balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
