package dbcore

// Store failure taxonomy. Stores return these (wrapped) so the RPC layer can
// translate each kind into a distinct fault code with errors.Is.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: lookup by identifier found no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict: uniqueness or referential violation.
	ErrConflict = errors.New("constraint violation")
	// ErrBusy: the pool could not supply a connection within its bound.
	ErrBusy = errors.New("connection pool exhausted")
	// ErrUnavailable: the backing store is unreachable or failed at the I/O
	// level.
	ErrUnavailable = errors.New("backing store unavailable")
)

// Translate maps a gorm/driver error into the taxonomy, wrapping so the
// original text is preserved. nil stays nil; an error that is already one of
// the four kinds passes through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrBusy), errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded):
		// database/sql surfaces pool-acquire timeouts as a context deadline
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, net.ErrClosed),
		errors.Is(err, os.ErrDeadlineExceeded), isNetError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func isNetError(err error) bool {
	var ne net.Error
	return errors.As(err, &ne)
}
