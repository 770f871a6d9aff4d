package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de Postgres para violación de constraint único.
const codeUniqueViolation = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único.
// Cubre tanto los UNIQUE de las tablas como los índices únicos parciales que
// protegen la fila activa por período.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
