package users

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailExists      = errors.New("email already exists")
	ErrUsernameExists   = errors.New("username already exists")
	ErrExternalIDExists = errors.New("external id already exists")
	ErrNotFound         = errors.New("user not found")
)

// postgres unique_violation
const uniqueViolationCode = "23505"

// maps unique-constraint violations to the duplicate taxonomy so callers can
// decide whether a duplicate write is benign (re-registration after a prior
// partial failure) or must fail the request
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return fmt.Errorf("failed to create user: %w", err)
	}

	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrEmailExists
	case "users_username_key":
		return ErrUsernameExists
	case "users_external_id_key":
		return ErrExternalIDExists
	}

	return fmt.Errorf("unique constraint %q violated: %w", pgErr.ConstraintName, err)
}
