package transaction

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type ListFilters struct {
	Status *Status
	Type   *Types
}

type Repository interface {
	CreateWithTx(ctx context.Context, tx interface{}, t *Transaction) error
	GetByID(ctx context.Context, transactionID ulid.ULID) (*Transaction, error)

	// LockByIDWithTx returns the transaction with a row lock held for the
	// duration of tx.
	LockByIDWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*Transaction, error)

	// SettleWithTx moves a PENDING transaction to the given terminal
	// status. It must fail if the row is no longer PENDING.
	SettleWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, to Status) error

	ListByUser(ctx context.Context, userID ulid.ULID, filters *ListFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	List(ctx context.Context, filters *ListFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
}
