package subscription

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx interface{}, sub *Subscription) error
	UpdateWithTx(ctx context.Context, tx interface{}, sub *Subscription) error

	GetByID(ctx context.Context, subscriptionID ulid.ULID) (*Subscription, error)
	GetByUserAndPlan(ctx context.Context, userID, planID ulid.ULID) (*Subscription, error)

	LockByIDWithTx(ctx context.Context, tx interface{}, subscriptionID ulid.ULID) (*Subscription, error)
	LockByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (*Subscription, error)

	ExistsByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (bool, error)

	ListByUser(ctx context.Context, userID ulid.ULID) ([]*Subscription, error)

	SumAmountsByUser(ctx context.Context, userID ulid.ULID) (float64, error)
	SumAmountsByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (float64, error)
}
