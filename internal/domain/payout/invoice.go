package payout

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

type InvoiceStatus string

const (
	StatusPaid InvoiceStatus = "PAID"
)

// Invoice records a single return payout for one account and period.
// The (user, month, year) unique index is the idempotency guard against
// paying the same period twice.
type Invoice struct {
	Id             ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId         ulid.ULID     `gorm:"type:varchar(26);not null;uniqueIndex:idx_invoices_user_period,priority:1" json:"userId"`
	InvoiceNumber  string        `gorm:"type:varchar(30);not null;uniqueIndex" json:"invoiceNumber"`
	PlanName       string        `gorm:"type:varchar(100);not null" json:"planName"`
	InvestedAmount float64       `gorm:"type:decimal(15,2);not null" json:"investedAmount"`
	RoiPercentage  float64       `gorm:"type:decimal(5,2);not null" json:"roiPercentage"`
	ReturnAmount   float64       `gorm:"type:decimal(15,2);not null" json:"returnAmount"`
	Month          int           `gorm:"not null;uniqueIndex:idx_invoices_user_period,priority:2" json:"month"`
	Year           int           `gorm:"not null;uniqueIndex:idx_invoices_user_period,priority:3" json:"year"`
	Status         InvoiceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Note           string        `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoiceNumber builds a human-legible number for the period, e.g.
// INV-202608-01J9ZK3M. The suffix is the tail of the invoice's ULID.
func NewInvoiceNumber(id ulid.ULID, month, year int) string {
	s := id.String()
	return fmt.Sprintf("INV-%04d%02d-%s", year, month, s[len(s)-8:])
}
