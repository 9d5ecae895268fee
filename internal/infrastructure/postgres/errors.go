package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/wordle-circles/internal/domain/repository"
)

// SQLSTATE codes we translate into repository errors.
const (
	codeUniqueViolation   = "23505"
	codeInvalidTextRepr   = "22P02"
	codeForeignKeyViolate = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateLookup maps errors from single-row lookups. Malformed ids are
// reported as not found so callers never see driver errors for bad input.
func translateLookup(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidTextRepr {
		return repository.ErrNotFound
	}
	return err
}

// translateInsert maps a unique-constraint violation to repository.ErrDuplicate.
func translateInsert(err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return repository.ErrDuplicate
	case codeForeignKeyViolate, codeInvalidTextRepr:
		return repository.ErrNotFound
	}
	return err
}
