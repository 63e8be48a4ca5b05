package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
// El libro financiero la traduce a ErrDuplicate: es la llave de idempotencia.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty convierte "" en NULL para columnas de texto opcionales
// (referencias del libro, notas de conciliación, responsables).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
