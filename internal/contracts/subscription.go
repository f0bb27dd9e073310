package contracts

type SubscribeRequest struct {
	PlanName  string  `json:"plan_name" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	RiskLevel string  `json:"risk_level" binding:"required,oneof=Low Medium High"`
}

type ModificationRequest struct {
	PlanName  string   `json:"plan_name" binding:"required"`
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0"`
	RiskLevel *string  `json:"risk_level" binding:"omitempty,oneof=Low Medium High"`
}

type CancelModificationRequest struct {
	PlanName string `json:"plan_name" binding:"required"`
}
