package subscription

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// PendingChange is the single outstanding modification queued on a
// subscription. At least one field is set on a live change.
type PendingChange struct {
	Amount    *float64
	RiskLevel *RiskLevel
}

func (c PendingChange) IsZero() bool {
	return c.Amount == nil && c.RiskLevel == nil
}

// Subscription allocates part of an account's capital to one plan.
// One subscription per (account, plan) pair.
//
// The pending columns persist the PendingChange variant; all domain code
// goes through Pending, SetPending and ClearPending so "has a pending
// modification" stays a single checkable condition.
type Subscription struct {
	Id               ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId           ulid.ULID  `gorm:"type:varchar(26);not null;uniqueIndex:idx_subscriptions_user_plan,priority:1" json:"userId"`
	PlanId           ulid.ULID  `gorm:"type:varchar(26);not null;uniqueIndex:idx_subscriptions_user_plan,priority:2" json:"planId"`
	PlanName         string     `gorm:"type:varchar(100);not null" json:"planName"`
	Amount           float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	RiskLevel        RiskLevel  `gorm:"type:varchar(10);not null" json:"riskLevel"`
	PendingAmount    *float64   `gorm:"type:decimal(15,2)" json:"pendingAmount,omitempty"`
	PendingRiskLevel *RiskLevel `gorm:"type:varchar(10)" json:"pendingRiskLevel,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Pending returns the outstanding modification, if any.
func (s *Subscription) Pending() (PendingChange, bool) {
	c := PendingChange{Amount: s.PendingAmount, RiskLevel: s.PendingRiskLevel}
	return c, !c.IsZero()
}

func (s *Subscription) SetPending(c PendingChange) {
	s.PendingAmount = c.Amount
	s.PendingRiskLevel = c.RiskLevel
}

func (s *Subscription) ClearPending() {
	s.PendingAmount = nil
	s.PendingRiskLevel = nil
}

// ApplyPending folds the outstanding change into the live fields and
// clears it. Fields the change leaves unset keep their current value.
func (s *Subscription) ApplyPending() {
	if s.PendingAmount != nil {
		s.Amount = *s.PendingAmount
	}
	if s.PendingRiskLevel != nil {
		s.RiskLevel = *s.PendingRiskLevel
	}
	s.ClearPending()
}
