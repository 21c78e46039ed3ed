package expense

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      int64               `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EVEN PERCENTAGE EXACT"`
	SpentAt      *string             `json:"spent_at,omitempty"` // RFC 3339; defaults to now
	Participants []*SplitParticipant `json:"participants" validate:"required,min=1"`
}

// UpdateExpenseRequest represents the request to update an expense
type UpdateExpenseRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID           int64                  `json:"id"`
	GroupID      int64                  `json:"group_id"`
	PayerID      int64                  `json:"payer_id"`
	PayerName    string                 `json:"payer_name,omitempty"`
	Description  string                 `json:"description"`
	Amount       float64                `json:"amount"`
	SplitType    string                 `json:"split_type"`
	SpentAt      string                 `json:"spent_at"`
	CreatedAt    string                 `json:"created_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents one share in an expense response
type ParticipantResponse struct {
	ID        int64   `json:"id"`
	ExpenseID int64   `json:"expense_id"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	Share     float64 `json:"share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		SplitType:   e.SplitType,
		SpentAt:     e.SpentAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:        p.ID,
		ExpenseID: p.ExpenseID,
		UserID:    p.UserID,
		UserName:  p.UserName,
		Share:     p.Share,
	}
}
