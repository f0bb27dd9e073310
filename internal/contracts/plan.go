package contracts

type PlanCreateRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	Description   string  `json:"description" binding:"omitempty,max=255"`
	MinInvestment float64 `json:"min_investment" binding:"required,gt=0"`
	LowRoiMin     float64 `json:"low_roi_min" binding:"gte=0"`
	LowRoiMax     float64 `json:"low_roi_max" binding:"gte=0"`
	MediumRoiMin  float64 `json:"medium_roi_min" binding:"gte=0"`
	MediumRoiMax  float64 `json:"medium_roi_max" binding:"gte=0"`
	HighRoiMin    float64 `json:"high_roi_min" binding:"gte=0"`
	HighRoiMax    float64 `json:"high_roi_max" binding:"gte=0"`
}

type PlanUpdateRequest struct {
	Description   *string  `json:"description" binding:"omitempty,max=255"`
	MinInvestment *float64 `json:"min_investment" binding:"omitempty,gt=0"`
	IsActive      *bool    `json:"is_active" binding:"omitempty"`
}
