// warehouse/errors.go
package warehouse

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a query against a dimension id or natural key
// that does not exist. Callers map it to a 404; it is never retried.
var ErrNotFound = errors.New("not found")

// ErrDuplicateFact reports a fact insert rejected by the natural-identity
// uniqueness constraint (symbol, trader, strategy, trade date). The ETL
// pipeline counts these as skips rather than failures.
var ErrDuplicateFact = errors.New("duplicate fact")

// ValidationError rejects malformed input before it reaches a table:
// blank natural keys, non-positive prices, zero quantities.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferentialError reports a fact referencing a dimension row that does
// not exist. The insert ordering makes this structurally impossible, so
// seeing one means the database file itself is inconsistent.
type ReferentialError struct {
	Err error
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("referential integrity violated: %v", e.Err)
}

func (e *ReferentialError) Unwrap() error { return e.Err }
