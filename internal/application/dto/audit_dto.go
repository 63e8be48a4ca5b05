package dto

import (
	"time"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// AuditLogResponse una entrada de la bitácora.
type AuditLogResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Diff     string    `json:"diff,omitempty"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// NewAuditLogResponses convierte una lista de entradas.
func NewAuditLogResponses(entries []*entity.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditLogResponse(*e))
	}
	return out
}
