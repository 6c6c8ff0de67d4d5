package dto

type PayRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Plan   string `json:"plan" validate:"required"`
}

type InitiatePaymentResponse struct {
	URL      string  `json:"url"`
	Token    string  `json:"token"`
	BuyOrder string  `json:"buyOrder"`
	Amount   float64 `json:"amount"`
	Message  string  `json:"message"`
}

type ConfirmRequest struct {
	TokenWS  string `json:"token_ws" form:"token_ws"`
	TbkToken string `json:"TBK_TOKEN" form:"TBK_TOKEN"`
}
