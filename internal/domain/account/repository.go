package account

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/shared"
)

type Repository interface {
	shared.TxManager

	// GetByUser returns the user's ledger account without locking it, or
	// (nil, nil) when the account has not been created yet.
	GetByUser(ctx context.Context, userID ulid.ULID) (*Account, error)

	// LockByUserWithTx returns the user's account with a row lock held for
	// the duration of tx, creating the account on first use.
	LockByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (*Account, error)

	// ApplyDeltaWithTx adds the given deltas to TotalInvested and
	// CurrentValue inside tx.
	ApplyDeltaWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, investedDelta, valueDelta float64) error
}
