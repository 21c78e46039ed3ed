package activity

import "time"

// Entry represents one event in a group's activity feed
type Entry struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"group_id"`
	ActorID    int64     `json:"actor_id"`
	Message    string    `json:"message"`
	EntityType *string   `json:"entity_type,omitempty"` // e.g. "EXPENSE", "PAYMENT", "MEMBER"
	EntityID   *int64    `json:"entity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated via JOIN
	ActorName string `json:"actor_name,omitempty"`
}
