package contracts

type IssueReturnRequest struct {
	UserID        string  `json:"user_id" binding:"required"`
	PlanName      string  `json:"plan_name" binding:"required"`
	RoiPercentage float64 `json:"roi_percentage" binding:"gte=0"`
	Month         int     `json:"month" binding:"required,min=1,max=12"`
	Year          int     `json:"year" binding:"required,min=2000"`
	Note          string  `json:"note" binding:"omitempty,max=255"`
}
