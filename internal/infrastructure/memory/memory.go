// Package memory implementa todos los puertos de persistencia sobre mapas en
// memoria. Se usa en los tests de los casos de uso y como modo dev sin PostgreSQL.
// Las "transacciones" se serializan con un mutex y se revierten restaurando una
// copia del estado tomada al inicio.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// Compile checks: el Store corre las transacciones de todos los orquestadores.
var (
	_ cashbox.TxRunner   = (*Store)(nil)
	_ stock.TxRunner     = (*Store)(nil)
	_ sales.TxRunner     = (*Store)(nil)
	_ purchases.TxRunner = (*Store)(nil)
	_ reversal.TxRunner  = (*Store)(nil)
)

// Store estado completo en memoria.
type Store struct {
	txMu sync.Mutex   // serializa transacciones completas
	mu   sync.RWMutex // protege el acceso a los mapas

	products    map[string]entity.Product
	movements   []entity.StockMovement
	ledger      map[string]entity.LedgerTransaction
	ledgerSeq   []string // ids en orden de inserción
	cashboxes   map[int64]entity.DailyCashbox // clave: día unix UTC
	invoices    map[string]entity.Invoice
	invItems    map[string]entity.InvoiceItem
	orders      map[string]entity.PurchaseOrder
	orderItems  map[string]entity.PurchaseOrderItem
	returns     map[string]entity.SalesReturn
	returnItems map[string]entity.SalesReturnItem
	customers   map[string]entity.Customer
	suppliers   map[string]entity.Supplier
	auditLogs   []entity.AuditLog
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:    map[string]entity.Product{},
		ledger:      map[string]entity.LedgerTransaction{},
		cashboxes:   map[int64]entity.DailyCashbox{},
		invoices:    map[string]entity.Invoice{},
		invItems:    map[string]entity.InvoiceItem{},
		orders:      map[string]entity.PurchaseOrder{},
		orderItems:  map[string]entity.PurchaseOrderItem{},
		returns:     map[string]entity.SalesReturn{},
		returnItems: map[string]entity.SalesReturnItem{},
		customers:   map[string]entity.Customer{},
		suppliers:   map[string]entity.Supplier{},
	}
}

// ── transacciones ─────────────────────────────────────────────────────────────

type snapshot struct {
	products    map[string]entity.Product
	movements   []entity.StockMovement
	ledger      map[string]entity.LedgerTransaction
	ledgerSeq   []string
	cashboxes   map[int64]entity.DailyCashbox
	invoices    map[string]entity.Invoice
	invItems    map[string]entity.InvoiceItem
	orders      map[string]entity.PurchaseOrder
	orderItems  map[string]entity.PurchaseOrderItem
	returns     map[string]entity.SalesReturn
	returnItems map[string]entity.SalesReturnItem
	customers   map[string]entity.Customer
	suppliers   map[string]entity.Supplier
	auditLogs   []entity.AuditLog
}

func (s *Store) runTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) clone() snapshot {
	return snapshot{
		products:    cloneMap(s.products),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		ledger:      cloneMap(s.ledger),
		ledgerSeq:   append([]string(nil), s.ledgerSeq...),
		cashboxes:   cloneCashboxes(s.cashboxes),
		invoices:    cloneMap(s.invoices),
		invItems:    cloneMap(s.invItems),
		orders:      cloneMap(s.orders),
		orderItems:  cloneMap(s.orderItems),
		returns:     cloneMap(s.returns),
		returnItems: cloneMap(s.returnItems),
		customers:   cloneMap(s.customers),
		suppliers:   cloneMap(s.suppliers),
		auditLogs:   append([]entity.AuditLog(nil), s.auditLogs...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.ledger = snap.ledger
	s.ledgerSeq = snap.ledgerSeq
	s.cashboxes = snap.cashboxes
	s.invoices = snap.invoices
	s.invItems = snap.invItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.returns = snap.returns
	s.returnItems = snap.returnItems
	s.customers = snap.customers
	s.suppliers = snap.suppliers
	s.auditLogs = snap.auditLogs
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Las cajas llevan slices internos (líneas manuales); se copian explícitamente.
func cloneCashboxes(m map[int64]entity.DailyCashbox) map[int64]entity.DailyCashbox {
	out := make(map[int64]entity.DailyCashbox, len(m))
	for k, v := range m {
		out[k] = cloneBox(v)
	}
	return out
}

func cloneBox(b entity.DailyCashbox) entity.DailyCashbox {
	b.ManualIncome = append([]entity.ManualEntry(nil), b.ManualIncome...)
	b.ManualExpenses = append([]entity.ManualEntry(nil), b.ManualExpenses...)
	return b
}

// RunStock implementa stock.TxRunner.
func (s *Store) RunStock(ctx context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	return s.runTx(func() error { return fn(s.StockMovements(), s.Products()) })
}

// RunCashbox implementa cashbox.TxRunner.
func (s *Store) RunCashbox(ctx context.Context, fn func(repository.DailyCashboxRepository, repository.LedgerTransactionRepository) error) error {
	return s.runTx(func() error { return fn(s.Cashboxes(), s.Ledger()) })
}

// RunSale implementa sales.TxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.LedgerTransactionRepository,
	repository.DailyCashboxRepository,
	repository.InvoiceRepository,
	repository.CustomerRepository,
) error) error {
	return s.runTx(func() error {
		return fn(s.StockMovements(), s.Products(), s.Ledger(), s.Cashboxes(), s.Invoices(), s.Customers())
	})
}

// RunPurchase implementa purchases.TxRunner.
func (s *Store) RunPurchase(ctx context.Context, fn func(
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.LedgerTransactionRepository,
	repository.DailyCashboxRepository,
	repository.PurchaseOrderRepository,
	repository.SupplierRepository,
) error) error {
	return s.runTx(func() error {
		return fn(s.StockMovements(), s.Products(), s.Ledger(), s.Cashboxes(), s.PurchaseOrders(), s.Suppliers())
	})
}

// RunReversal implementa reversal.TxRunner.
func (s *Store) RunReversal(ctx context.Context, fn func(repository.DailyCashboxRepository, repository.LedgerTransactionRepository) error) error {
	return s.runTx(func() error { return fn(s.Cashboxes(), s.Ledger()) })
}

// ── libro financiero ──────────────────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

// Ledger devuelve el repositorio del libro financiero.
func (s *Store) Ledger() repository.LedgerTransactionRepository { return ledgerRepo{s} }

func (r ledgerRepo) Create(tx *entity.LedgerTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	r.s.ledger[tx.ID] = *tx
	r.s.ledgerSeq = append(r.s.ledgerSeq, tx.ID)
	return nil
}

func (r ledgerRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.ledger[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (r ledgerRepo) FindByReference(refType entity.ReferenceType, refID string) ([]*entity.LedgerTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.LedgerTransaction
	for _, id := range r.s.ledgerSeq {
		tx, ok := r.s.ledger[id]
		if ok && tx.ReferenceType == refType && tx.ReferenceID == refID {
			cp := tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r ledgerRepo) ExistsByReference(kind string, refType entity.ReferenceType, refID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, tx := range r.s.ledger {
		if tx.Kind == kind && tx.ReferenceType == refType && tx.ReferenceID == refID {
			return true, nil
		}
	}
	return false, nil
}

func (r ledgerRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.ledger, id)
	for i, v := range r.s.ledgerSeq {
		if v == id {
			r.s.ledgerSeq = append(r.s.ledgerSeq[:i], r.s.ledgerSeq[i+1:]...)
			break
		}
	}
	return nil
}

func (r ledgerRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.LedgerTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.LedgerTransaction
	for _, id := range r.s.ledgerSeq {
		tx := r.s.ledger[id]
		if tx.OccurredAt.Before(from) || tx.OccurredAt.After(to) {
			continue
		}
		cp := tx
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

// ── caja diaria ───────────────────────────────────────────────────────────────

type cashboxRepo struct{ s *Store }

// Cashboxes devuelve el repositorio de la caja diaria.
func (s *Store) Cashboxes() repository.DailyCashboxRepository { return cashboxRepo{s} }

func dayKey(date time.Time) int64 { return entity.DayOf(date).Unix() }

func (r cashboxRepo) GetByDate(date time.Time) (*entity.DailyCashbox, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	box, ok := r.s.cashboxes[dayKey(date)]
	if !ok {
		return nil, nil
	}
	cp := cloneBox(box)
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByDate: el runTx ya serializa las transacciones.
func (r cashboxRepo) GetForUpdate(date time.Time) (*entity.DailyCashbox, error) {
	return r.GetByDate(date)
}

func (r cashboxRepo) GetLatestBefore(date time.Time) (*entity.DailyCashbox, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *entity.DailyCashbox
	limit := dayKey(date)
	for k, box := range r.s.cashboxes {
		if k >= limit {
			continue
		}
		if best == nil || box.Date.After(best.Date) {
			cp := cloneBox(box)
			best = &cp
		}
	}
	return best, nil
}

func (r cashboxRepo) GetLatest() (*entity.DailyCashbox, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *entity.DailyCashbox
	for _, box := range r.s.cashboxes {
		if best == nil || box.Date.After(best.Date) {
			cp := cloneBox(box)
			best = &cp
		}
	}
	return best, nil
}

func (r cashboxRepo) Create(box *entity.DailyCashbox) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if box.ID == "" {
		box.ID = uuid.New().String()
	}
	r.s.cashboxes[dayKey(box.Date)] = cloneBox(*box)
	return nil
}

func (r cashboxRepo) Update(box *entity.DailyCashbox) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cashboxes[dayKey(box.Date)] = cloneBox(*box)
	return nil
}

// ── movimientos de stock ──────────────────────────────────────────────────────

type stockMovementRepo struct{ s *Store }

// StockMovements devuelve el repositorio del libro de stock.
func (s *Store) StockMovements() repository.StockMovementRepository { return stockMovementRepo{s} }

func (r stockMovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r stockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r stockMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].Reference == reference {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r productRepo) UpdateQuantities(id string, warehouseQty, shopQty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.WarehouseQty = warehouseQty
	p.ShopQty = shopQty
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Product
	for _, id := range ids {
		p := r.s.products[id]
		out = append(out, &p)
	}
	return paginate(out, limit, offset), nil
}

// ── facturas ──────────────────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

// Invoices devuelve el repositorio de facturas.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

func (r invoiceRepo) Create(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.invItems[item.ID] = *item
	return nil
}

func (r invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r invoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InvoiceItem
	ids := make([]string, 0)
	for id, item := range r.s.invItems {
		if item.InvoiceID == invoiceID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		item := r.s.invItems[id]
		out = append(out, &item)
	}
	return out, nil
}

func (r invoiceRepo) Update(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invItems[item.ID] = *item
	return nil
}

// ── órdenes de compra ─────────────────────────────────────────────────────────

type purchaseOrderRepo struct{ s *Store }

// PurchaseOrders devuelve el repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return purchaseOrderRepo{s} }

func (r purchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.s.orders[o.ID] = *o
	return nil
}

func (r purchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.orderItems[item.ID] = *item
	return nil
}

func (r purchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r purchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PurchaseOrderItem
	for _, item := range r.s.orderItems {
		if item.PurchaseOrderID == orderID {
			cp := item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r purchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = *o
	return nil
}

// ── devoluciones ──────────────────────────────────────────────────────────────

type salesReturnRepo struct{ s *Store }

// SalesReturns devuelve el repositorio de devoluciones.
func (s *Store) SalesReturns() repository.SalesReturnRepository { return salesReturnRepo{s} }

func (r salesReturnRepo) Create(ret *entity.SalesReturn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	r.s.returns[ret.ID] = *ret
	return nil
}

func (r salesReturnRepo) CreateItem(item *entity.SalesReturnItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.returnItems[item.ID] = *item
	return nil
}

func (r salesReturnRepo) GetByID(id string) (*entity.SalesReturn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, nil
	}
	return &ret, nil
}

func (r salesReturnRepo) GetItems(returnID string) ([]*entity.SalesReturnItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SalesReturnItem
	for _, item := range r.s.returnItems {
		if item.SalesReturnID == returnID {
			cp := item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r salesReturnRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok {
		return domain.ErrNotFound
	}
	ret.Status = status
	r.s.returns[id] = ret
	return nil
}

func (r salesReturnRepo) ListByInvoice(invoiceID string) ([]*entity.SalesReturn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SalesReturn
	for _, ret := range r.s.returns {
		if ret.InvoiceID == invoiceID {
			cp := ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── clientes y proveedores ────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{s} }

func (r customerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r customerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r customerRepo) UpdateBalances(id string, balance, creditBalance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Balance = balance
	c.CreditBalance = creditBalance
	c.UpdatedAt = time.Now()
	r.s.customers[id] = c
	return nil
}

type supplierRepo struct{ s *Store }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

func (r supplierRepo) Create(sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sup.ID == "" {
		sup.ID = uuid.New().String()
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r supplierRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	sup.Balance = balance
	sup.UpdatedAt = time.Now()
	r.s.suppliers[id] = sup
	return nil
}

// ── bitácora de auditoría ─────────────────────────────────────────────────────

type auditLogRepo struct{ s *Store }

// AuditLogs devuelve el repositorio de la bitácora.
func (s *Store) AuditLogs() repository.AuditLogRepository { return auditLogRepo{s} }

func (r auditLogRepo) Create(entry *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.s.auditLogs = append(r.s.auditLogs, *entry)
	return nil
}

func (r auditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.AuditLog
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		cp := r.s.auditLogs[i]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

// paginate aplica limit/offset; limit <= 0 significa sin límite.
func paginate[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
