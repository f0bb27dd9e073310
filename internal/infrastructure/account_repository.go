package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) GetByUser(ctx context.Context, userID ulid.ULID) (*account.Account, error) {
	var acct account.Account
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID.String()).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountRepository) LockByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (*account.Account, error) {
	dbTx := tx.(*gorm.DB)

	var acct account.Account
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID.String()).
		First(&acct).Error
	if err == nil {
		return &acct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	acct = account.Account{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := dbTx.WithContext(ctx).Create(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountRepository) ApplyDeltaWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, investedDelta, valueDelta float64) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Model(&account.Account{}).
		Where("user_id = ?", userID.String()).
		UpdateColumn("total_invested", gorm.Expr("total_invested + ?", investedDelta)).
		UpdateColumn("current_value", gorm.Expr("current_value + ?", valueDelta)).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r *AccountRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return r.DB.WithContext(ctx).Begin(), nil
}

func (r *AccountRepository) CommitTx(tx interface{}) error {
	return tx.(*gorm.DB).Commit().Error
}

func (r *AccountRepository) RollbackTx(tx interface{}) error {
	return tx.(*gorm.DB).Rollback().Error
}
