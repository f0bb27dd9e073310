package contracts

type DepositRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Method  string  `json:"method" binding:"omitempty,max=50"`
	Details string  `json:"details" binding:"omitempty,max=255"`
}

type WithdrawalRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Method  string  `json:"method" binding:"omitempty,max=50"`
	Details string  `json:"details" binding:"omitempty,max=255"`
}

type ResolveWithdrawalRequest struct {
	Decision string `json:"decision" binding:"required,oneof=COMPLETED REJECTED"`
}
