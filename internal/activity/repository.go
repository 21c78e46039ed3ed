package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity feed persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new feed entry
func (r *Repository) Create(ctx context.Context, groupID, actorID int64, message string, entityType *string, entityID *int64) (*Entry, error) {
	query := `
		INSERT INTO activities (group_id, actor_id, message, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, actor_id, message, entity_type, entity_id, created_at
	`

	entry := &Entry{}
	err := r.db.QueryRowContext(ctx, query, groupID, actorID, message, entityType, entityID).Scan(
		&entry.ID,
		&entry.GroupID,
		&entry.ActorID,
		&entry.Message,
		&entry.EntityType,
		&entry.EntityID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity entry: %w", err)
	}

	return entry, nil
}

// ListByGroupID retrieves feed entries for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Entry, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM activities WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	// Get entries
	query := `
		SELECT a.id, a.group_id, a.actor_id, a.message, a.entity_type, a.entity_id, a.created_at,
		       u.name as actor_name
		FROM activities a
		JOIN users u ON a.actor_id = u.id
		WHERE a.group_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.GroupID,
			&entry.ActorID,
			&entry.Message,
			&entry.EntityType,
			&entry.EntityID,
			&entry.CreatedAt,
			&entry.ActorName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
