package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := r.DB.WithContext(ctx).Where("id = ?", transactionID.String()).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) LockByIDWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*transaction.Transaction, error) {
	dbTx := tx.(*gorm.DB)

	var t transaction.Transaction
	err := dbTx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", transactionID.String()).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) SettleWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, to transaction.Status) error {
	dbTx := tx.(*gorm.DB)

	res := dbTx.WithContext(ctx).Model(&transaction.Transaction{}).
		Where("id = ? AND status = ?", transactionID.String(), string(transaction.StatusPending)).
		UpdateColumn("status", string(to)).
		UpdateColumn("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %s is not pending", transactionID.String())
	}
	return nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID ulid.ULID, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Model(&transaction.Transaction{}).Where("user_id = ?", userID.String())
	query = applyTransactionFilters(query, filters)
	return pkg.Paginate[transaction.Transaction](query, pagination, "date DESC")
}

func (r *TransactionRepository) List(ctx context.Context, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Model(&transaction.Transaction{})
	query = applyTransactionFilters(query, filters)
	return pkg.Paginate[transaction.Transaction](query, pagination, "date DESC")
}

func applyTransactionFilters(query *gorm.DB, filters *transaction.ListFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.Type != nil {
		query = query.Where("type = ?", string(*filters.Type))
	}
	return query
}
