package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Types string

const (
	Deposit    Types = "DEPOSIT"
	Withdrawal Types = "WITHDRAWAL"
	Return     Types = "RETURN"
	Refund     Types = "REFUND"
)

func (t Types) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, Return, Refund:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Transaction is an append-style ledger record. Once a transaction leaves
// PENDING it never transitions again; RETURN and REFUND records are born
// COMPLETED.
type Transaction struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId      ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_user_id;not null" json:"userId"`
	Type        Types      `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	Status      Status     `gorm:"type:varchar(10);not null;index:idx_transactions_status" json:"status"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	Method      string     `gorm:"type:varchar(50)" json:"method,omitempty"`
	Details     string     `gorm:"type:varchar(255)" json:"details,omitempty"`
	InvoiceId   *ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_invoice_id" json:"invoiceId,omitempty"`
	Date        time.Time  `gorm:"not null;index:idx_transactions_date" json:"date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
