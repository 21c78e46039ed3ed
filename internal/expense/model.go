package expense

import (
	"time"

	"github.com/tabshare/tabshare/internal/expense/split"
)

// Expense represents an expense fronted by one user on behalf of a group
type Expense struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	PayerID     int64     `json:"payer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	SplitType   string    `json:"split_type"` // EVEN, PERCENTAGE, EXACT
	SpentAt     time.Time `json:"spent_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Participant records one user's share of an expense. The payer is a
// participant too; an expense's shares sum to its amount.
type Participant struct {
	ID        int64   `json:"id"`
	ExpenseID int64   `json:"expense_id"`
	UserID    int64   `json:"user_id"`
	Share     float64 `json:"share"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithParticipants combines an expense with its share breakdown
type ExpenseWithParticipants struct {
	Expense      *Expense
	Participants []*Participant
}

// SplitParticipant is used when creating an expense
type SplitParticipant struct {
	UserID     int64    `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
}

// ToSplitInput converts to the split package's input type
func (p *SplitParticipant) ToSplitInput() split.SplitInput {
	return split.SplitInput{
		UserID:     p.UserID,
		Percentage: p.Percentage,
		Amount:     p.Amount,
	}
}
