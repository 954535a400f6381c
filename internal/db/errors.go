package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for store operations. Check with errors.Is.
var (
	// ErrTransactionConflict indicates a SurrealDB transaction conflict
	// from concurrent writes to the same record. Callers decide whether
	// to retry.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrSchemaViolation indicates the store rejected a write that broke a
	// field assertion, e.g. a quantity going negative.
	ErrSchemaViolation = errors.New("schema violation")
)

// wrapQueryError inspects a SurrealDB error and wraps it with the matching
// sentinel when it is a recognized query error. Other errors pass through
// unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		if strings.Contains(msg, "Transaction conflict") {
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		}
		if strings.Contains(msg, "Found") && strings.Contains(msg, "ASSERT") {
			return fmt.Errorf("%w: %s", ErrSchemaViolation, msg)
		}
	}

	return err
}
