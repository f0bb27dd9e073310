package infrastructure

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/payout"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) payout.Repository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) CreateWithTx(ctx context.Context, tx interface{}, invoice *payout.Invoice) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID ulid.ULID) (*payout.Invoice, error) {
	var invoice payout.Invoice
	err := r.DB.WithContext(ctx).Where("id = ?", invoiceID.String()).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetByUserPeriod(ctx context.Context, userID ulid.ULID, month, year int) (*payout.Invoice, error) {
	return findByUserPeriod(r.DB.WithContext(ctx), userID, month, year)
}

func (r *InvoiceRepository) GetByUserPeriodWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, month, year int) (*payout.Invoice, error) {
	dbTx := tx.(*gorm.DB)
	return findByUserPeriod(dbTx.WithContext(ctx), userID, month, year)
}

func findByUserPeriod(db *gorm.DB, userID ulid.ULID, month, year int) (*payout.Invoice, error) {
	var invoice payout.Invoice
	err := db.Where("user_id = ? AND month = ? AND year = ?", userID.String(), month, year).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetLatestPaidByUser(ctx context.Context, userID ulid.ULID) (*payout.Invoice, error) {
	var invoice payout.Invoice
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID.String(), string(payout.StatusPaid)).
		Order("year DESC, month DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*payout.Invoice, int64, error) {
	query := r.DB.WithContext(ctx).Model(&payout.Invoice{}).Where("user_id = ?", userID.String())
	return pkg.Paginate[payout.Invoice](query, pagination, "year DESC, month DESC")
}
