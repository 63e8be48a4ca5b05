package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera de una factura.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices
			(id, number, customer_id, date, total, paid_amount, payment_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, nullIfEmpty(inv.CustomerID), inv.Date,
		inv.Total, inv.PaidAmount, inv.PaymentType, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items
			(id, invoice_id, product_id, quantity, returned_qty, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ProductID, item.Quantity,
		item.ReturnedQty, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura; devuelve nil (sin error) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, number, COALESCE(customer_id, ''), date, total, paid_amount,
			payment_type, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.Date, &inv.Total,
		&inv.PaidAmount, &inv.PaymentType, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems lista las líneas de una factura.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, returned_qty, unit_price, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceItem
	for rows.Next() {
		var item entity.InvoiceItem
		err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.Quantity,
			&item.ReturnedQty, &item.UnitPrice, &item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// Update reescribe totales y pagado (lo usan las devoluciones).
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET total = $2, paid_amount = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, inv.ID, inv.Total, inv.PaidAmount, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateItem reescribe cantidad devuelta y subtotal de una línea.
func (r *InvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items SET returned_qty = $2, subtotal = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.ReturnedQty, item.Subtotal)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}
