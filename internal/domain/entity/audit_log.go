package entity

import "time"

// AuditLog es una entrada de bitácora por acción de orquestador.
// Se registra fire-and-forget: un fallo al escribirla nunca aborta la operación financiera.
type AuditLog struct {
	ID       string
	UserID   string
	Action   string // ej. "sale.register", "return.settle", "stock.adjust"
	Entity   string // ej. "invoice", "product", "cashbox"
	EntityID string
	Diff     string // JSON u otro texto con el antes/después relevante
	Note     string
	LoggedAt time.Time
}
