package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents money actually transferred between two group members.
// A payment cancels debt implied by expense shares in the opposite direction.
type Payment struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"group_id"`
	FromUserID int64     `json:"from_user_id"` // Debtor settling up
	ToUserID   int64     `json:"to_user_id"`   // Creditor being paid
	Amount     float64   `json:"amount"`
	Method     *string   `json:"method,omitempty"` // e.g. "cash", "bank transfer"
	Notes      *string   `json:"notes,omitempty"`
	Reference  uuid.UUID `json:"reference"` // Client-supplied idempotency key
	PaidAt     time.Time `json:"paid_at"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated via JOIN
	FromUserName string `json:"from_user_name,omitempty"`
	ToUserName   string `json:"to_user_name,omitempty"`
}
