package group

import "time"

// Group represents a group of users who share expenses
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMember represents a user's membership in a group.
// A user appears at most once per group.
type GroupMember struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Populated from JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
