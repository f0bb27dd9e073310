package shared

import (
	"context"
	"strings"

	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
)

// TxManager is implemented by repositories that can open a storage
// transaction. The opaque handle is passed back into the repositories'
// *WithTx methods so that a multi-step balance mutation commits or rolls
// back as one unit.
type TxManager interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error
}

const maxTxAttempts = 3

// RunAtomic executes fn inside a storage transaction. Transient conflicts
// (serialization failures, deadlocks) are retried up to maxTxAttempts;
// business errors abort immediately and roll back.
func RunAtomic(ctx context.Context, tm TxManager, fn func(tx interface{}) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		tx, err := tm.BeginTx(ctx)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}

		if err := fn(tx); err != nil {
			_ = tm.RollbackTx(tx)
			if !IsRetryableTxError(err) {
				return err
			}
			lastErr = err
			continue
		}

		if err := tm.CommitTx(tx); err != nil {
			_ = tm.RollbackTx(tx)
			if !IsRetryableTxError(err) {
				return appErrors.NewDatabaseError(err)
			}
			lastErr = err
			continue
		}

		return nil
	}

	return appErrors.NewStorageConflictError(lastErr)
}

// IsRetryableTxError reports whether err is a transient storage conflict.
// Postgres signals these with SQLSTATE 40001 (serialization_failure) and
// 40P01 (deadlock_detected).
func IsRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := appErrors.AsAppError(err); ok {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
