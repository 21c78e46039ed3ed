package payment

// CreatePaymentRequest represents the request to record a payment
type CreatePaymentRequest struct {
	GroupID   int64   `json:"group_id" validate:"required"`
	ToUserID  int64   `json:"to_user_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    *string `json:"method,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Reference string  `json:"reference,omitempty"` // UUID; generated server-side if omitted
	PaidAt    *string `json:"paid_at,omitempty"`   // RFC 3339; defaults to now
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID           int64   `json:"id"`
	GroupID      int64   `json:"group_id"`
	FromUserID   int64   `json:"from_user_id"`
	FromUserName string  `json:"from_user_name,omitempty"`
	ToUserID     int64   `json:"to_user_id"`
	ToUserName   string  `json:"to_user_name,omitempty"`
	Amount       float64 `json:"amount"`
	Method       *string `json:"method,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Reference    string  `json:"reference"`
	PaidAt       string  `json:"paid_at"`
	CreatedAt    string  `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:           p.ID,
		GroupID:      p.GroupID,
		FromUserID:   p.FromUserID,
		FromUserName: p.FromUserName,
		ToUserID:     p.ToUserID,
		ToUserName:   p.ToUserName,
		Amount:       p.Amount,
		Method:       p.Method,
		Notes:        p.Notes,
		Reference:    p.Reference.String(),
		PaidAt:       p.PaidAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
