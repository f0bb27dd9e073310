package account

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Account is the per-user ledger record. TotalInvested is the cumulative
// capital ever counted as invested; CurrentValue is the total monetary
// value attributed to the account, locked and usable portions included.
// CurrentValue never rests below zero.
type Account struct {
	Id            ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID `gorm:"type:varchar(26);uniqueIndex:idx_accounts_user_id;not null" json:"userId"`
	TotalInvested float64   `gorm:"type:decimal(15,2);not null;default:0" json:"totalInvested"`
	CurrentValue  float64   `gorm:"type:decimal(15,2);not null;default:0" json:"currentValue"`
	CreatedAt     time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}
