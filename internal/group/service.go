package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
)

// ActivityRecorder lets the group service append to the group activity feed
type ActivityRecorder interface {
	RecordMemberJoined(ctx context.Context, groupID, actorID, userID int64) error
}

// Service handles group business logic
type Service struct {
	repo     *Repository
	activity ActivityRecorder
}

// NewService creates a new group service
func NewService(repo *Repository, activity ActivityRecorder) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
	}
}

// Create creates a new group and adds the creator as its first member
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	group, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.AddMember(ctx, group.ID, creatorID)
	if err != nil {
		// TODO: Should rollback group creation in a transaction
		return nil, err
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all groups a user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID, actorID int64, req *AddMemberRequest) (*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	// Membership is unique per (group, user) pair
	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	member, err := s.repo.AddMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		// Feed writes are best-effort; the membership itself is already recorded
		_ = s.activity.RecordMemberJoined(ctx, groupID, actorID, req.UserID)
	}

	return member, nil
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// RemoveMember removes a user from a group
func (s *Service) RemoveMember(ctx context.Context, groupID, userID int64) error {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}
