package infrastructure

import (
	"context"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) subscription.Repository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) CreateWithTx(ctx context.Context, tx interface{}, sub *subscription.Subscription) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(sub).Error
}

// UpdateWithTx saves every column so that clearing the pending fields
// writes the NULLs through.
func (r *SubscriptionRepository) UpdateWithTx(ctx context.Context, tx interface{}, sub *subscription.Subscription) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Save(sub).Error
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.DB.WithContext(ctx).Where("id = ?", subscriptionID.String()).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) GetByUserAndPlan(ctx context.Context, userID, planID ulid.ULID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND plan_id = ?", userID.String(), planID.String()).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) LockByIDWithTx(ctx context.Context, tx interface{}, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	dbTx := tx.(*gorm.DB)

	var sub subscription.Subscription
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", subscriptionID.String()).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) LockByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (*subscription.Subscription, error) {
	dbTx := tx.(*gorm.DB)

	var sub subscription.Subscription
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND plan_id = ?", userID.String(), planID.String()).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ExistsByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (bool, error) {
	dbTx := tx.(*gorm.DB)

	var count int64
	err := dbTx.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("user_id = ? AND plan_id = ?", userID.String(), planID.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepository) SumAmountsByUser(ctx context.Context, userID ulid.ULID) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("user_id = ?", userID.String()).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *SubscriptionRepository) SumAmountsByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (float64, error) {
	dbTx := tx.(*gorm.DB)

	var total float64
	err := dbTx.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("user_id = ?", userID.String()).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
