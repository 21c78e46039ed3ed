package expense

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/tabshare/tabshare/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrInvalidAmount       = errors.New("expense amount must be a positive number")
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")
	ErrNotPayer            = errors.New("only the payer can modify this expense")
)

// ActivityRecorder lets the expense service append to the group activity feed
type ActivityRecorder interface {
	RecordExpenseAdded(ctx context.Context, groupID, actorID, expenseID int64, description string, amount float64) error
}

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	activity     ActivityRecorder
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, activity ActivityRecorder) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		activity:     activity,
	}
}

// CreateExpense creates a new expense and computes shares using the requested
// split strategy. The payer must appear among the participants so their own
// share is recorded alongside everyone else's.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithParticipants, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	payerIncluded := false
	for _, p := range req.Participants {
		if p.UserID == payerID {
			payerIncluded = true
			break
		}
	}
	if !payerIncluded {
		return nil, ErrPayerNotParticipant
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.SplitInput, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitInput()
	}

	shares, err := strategy.Calculate(req.Amount, inputs)
	if err != nil {
		return nil, err
	}

	spentAt := time.Now().UTC()
	if req.SpentAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.SpentAt)
		if err != nil {
			return nil, errors.New("spent_at must be RFC 3339")
		}
		spentAt = parsed
	}

	expense, err := s.repo.CreateExpense(ctx, payerID, spentAt, req)
	if err != nil {
		return nil, err
	}

	participants := make([]*Participant, len(shares))
	for i, share := range shares {
		participant, err := s.repo.CreateParticipant(ctx, expense.ID, share.UserID, share.Share)
		if err != nil {
			// TODO: Should rollback expense creation in a transaction
			return nil, err
		}
		participants[i] = participant
	}

	if s.activity != nil {
		// Feed writes are best-effort; the expense itself is already recorded
		_ = s.activity.RecordExpenseAdded(ctx, expense.GroupID, payerID, expense.ID, expense.Description, expense.Amount)
	}

	return &ExpenseWithParticipants{
		Expense:      expense,
		Participants: participants,
	}, nil
}

// GetExpenseByID retrieves an expense with its share breakdown
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithParticipants, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	participants, err := s.repo.GetParticipantsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithParticipants{
		Expense:      expense,
		Participants: participants,
	}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// UpdateExpense modifies an expense's description
func (s *Service) UpdateExpense(ctx context.Context, id, userID int64, req *UpdateExpenseRequest) (*Expense, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return nil, ErrNotPayer
	}

	return s.repo.UpdateExpense(ctx, id, req)
}

// DeleteExpense deletes an expense and its participant shares
func (s *Service) DeleteExpense(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PayerID != userID {
		return ErrNotPayer
	}

	return s.repo.DeleteExpense(ctx, id)
}
