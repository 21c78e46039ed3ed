package activity

import (
	"context"
	"fmt"
)

// Service handles activity feed business logic
type Service struct {
	repo *Repository
}

// NewService creates a new activity service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an entry to a group's feed
func (s *Service) Record(ctx context.Context, groupID, actorID int64, message string, entityType *string, entityID *int64) (*Entry, error) {
	return s.repo.Create(ctx, groupID, actorID, message, entityType, entityID)
}

// ListByGroupID retrieves the feed for a group, newest first
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Entry, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// RecordExpenseAdded appends an expense entry to the feed.
// Satisfies the expense package's ActivityRecorder interface.
func (s *Service) RecordExpenseAdded(ctx context.Context, groupID, actorID, expenseID int64, description string, amount float64) error {
	message := fmt.Sprintf("added expense %q for %.2f", description, amount)
	entityType := "EXPENSE"
	_, err := s.repo.Create(ctx, groupID, actorID, message, &entityType, &expenseID)
	return err
}

// RecordMemberJoined appends a membership entry to the feed.
// Satisfies the group package's ActivityRecorder interface.
func (s *Service) RecordMemberJoined(ctx context.Context, groupID, actorID, userID int64) error {
	message := fmt.Sprintf("added user %d to the group", userID)
	entityType := "MEMBER"
	_, err := s.repo.Create(ctx, groupID, actorID, message, &entityType, &userID)
	return err
}

// RecordPaymentMade appends a payment entry to the feed.
// Satisfies the payment package's ActivityRecorder interface.
func (s *Service) RecordPaymentMade(ctx context.Context, groupID, actorID, paymentID int64, amount float64) error {
	message := fmt.Sprintf("recorded a payment of %.2f", amount)
	entityType := "PAYMENT"
	_, err := s.repo.Create(ctx, groupID, actorID, message, &entityType, &paymentID)
	return err
}
