package plan

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Plan is administrator-managed reference data. The per-risk ROI ranges
// are display figures only; actual payouts use the percentage entered at
// issuance time.
type Plan struct {
	Id            ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_plans_name" json:"name"`
	Description   string    `gorm:"type:varchar(255)" json:"description"`
	MinInvestment float64   `gorm:"type:decimal(15,2);not null" json:"minInvestment"`
	LowRoiMin     float64   `gorm:"type:decimal(5,2);not null;default:0" json:"lowRoiMin"`
	LowRoiMax     float64   `gorm:"type:decimal(5,2);not null;default:0" json:"lowRoiMax"`
	MediumRoiMin  float64   `gorm:"type:decimal(5,2);not null;default:0" json:"mediumRoiMin"`
	MediumRoiMax  float64   `gorm:"type:decimal(5,2);not null;default:0" json:"mediumRoiMax"`
	HighRoiMin    float64   `gorm:"type:decimal(5,2);not null;default:0" json:"highRoiMin"`
	HighRoiMax    float64   `gorm:"type:decimal(5,2);not null;default:0" json:"highRoiMax"`
	IsActive      bool      `gorm:"not null;default:true;index:idx_plans_active" json:"isActive"`
	CreatedAt     time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Plan) TableName() string {
	return "plans"
}
