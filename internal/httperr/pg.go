package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// O banco é a segunda linha de defesa contra corrida entre o
// pre-check de disponibilidade e o INSERT/UPDATE (constraint de
// exclusão + índice único parcial). Aqui traduzimos a violação
// para o mesmo erro de negócio do pre-check.

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsUniqueConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// ConstraintName devolve o nome da constraint violada ("" se o erro
// não vier do Postgres).
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
