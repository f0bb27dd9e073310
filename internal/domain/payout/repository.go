package payout

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx interface{}, invoice *Invoice) error

	GetByID(ctx context.Context, invoiceID ulid.ULID) (*Invoice, error)

	// GetByUserPeriod and its tx variant return (nil, nil) when no invoice
	// exists for the period, so callers can treat absence as a plain value.
	GetByUserPeriod(ctx context.Context, userID ulid.ULID, month, year int) (*Invoice, error)
	GetByUserPeriodWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, month, year int) (*Invoice, error)

	// GetLatestPaidByUser returns (nil, nil) when the account has no paid
	// invoices yet.
	GetLatestPaidByUser(ctx context.Context, userID ulid.ULID) (*Invoice, error)

	ListByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Invoice, int64, error)
}
