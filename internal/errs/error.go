package errs

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNoCopyAvailable    = errors.New("no copy available")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrDuplicateReview    = errors.New("review already submitted for this book")
	ErrInvariantViolation = errors.New("availability invariant violated")
	// ErrTransientStore marks store-level conflicts the caller may retry
	// by re-running the whole operation.
	ErrTransientStore = errors.New("transient store failure")
)

// FromPg classifies a postgres error into one of the sentinel kinds,
// or returns it unchanged.
func FromPg(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgerrcode.IsTransactionRollback(pgErr.Code):
		return ErrTransientStore
	case pgErr.Code == pgerrcode.CheckViolation:
		return ErrInvariantViolation
	case pgErr.Code == pgerrcode.UniqueViolation:
		return ErrDuplicateReview
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return ErrNotFound
	// a key that cannot even be parsed as its column type names no row
	case pgErr.Code == pgerrcode.InvalidTextRepresentation:
		return ErrNotFound
	}
	return err
}
