package ledger

import (
	"context"
	"errors"

	"github.com/tabshare/tabshare/internal/expense"
	"github.com/tabshare/tabshare/internal/group"
	"github.com/tabshare/tabshare/internal/payment"
	"github.com/tabshare/tabshare/internal/user"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
)

// GroupSource checks that a group exists
type GroupSource interface {
	GetByID(ctx context.Context, id int64) (*group.Group, error)
}

// ExpenseSource supplies the expense snapshot for a group
type ExpenseSource interface {
	ListAllByGroupID(ctx context.Context, groupID int64) ([]*expense.Expense, error)
	ListParticipantsByGroupID(ctx context.Context, groupID int64) ([]*expense.Participant, error)
}

// PaymentSource supplies the payment snapshot for a group
type PaymentSource interface {
	ListAllByGroupID(ctx context.Context, groupID int64) ([]*payment.Payment, error)
}

// UserSource resolves user records for display names
type UserSource interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*user.User, error)
}

// Service assembles group snapshots and runs the balance computations.
// It holds no state of its own; balances are recomputed on every call.
type Service struct {
	groups   GroupSource
	expenses ExpenseSource
	payments PaymentSource
	users    UserSource
}

// NewService creates a new ledger service with its data sources injected
func NewService(groups GroupSource, expenses ExpenseSource, payments PaymentSource, users UserSource) *Service {
	return &Service{
		groups:   groups,
		expenses: expenses,
		payments: payments,
		users:    users,
	}
}

// GetGroupBalances computes the current net balance of every member who
// appears in any expense or payment of the group
func (s *Service) GetGroupBalances(ctx context.Context, groupID int64) ([]Balance, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	expenses, err := s.expenses.ListAllByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	participants, err := s.expenses.ListParticipantsByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListAllByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenseRecords := make([]ExpenseRecord, len(expenses))
	seen := make(map[int64]bool)
	var userIDs []int64
	collect := func(id int64) {
		if !seen[id] {
			seen[id] = true
			userIDs = append(userIDs, id)
		}
	}

	for i, e := range expenses {
		expenseRecords[i] = ExpenseRecord{
			ID:      e.ID,
			GroupID: e.GroupID,
			PayerID: e.PayerID,
			Amount:  e.Amount,
		}
		collect(e.PayerID)
	}

	shareRecords := make([]ShareRecord, len(participants))
	for i, p := range participants {
		shareRecords[i] = ShareRecord{
			ExpenseID: p.ExpenseID,
			UserID:    p.UserID,
			Share:     p.Share,
		}
		collect(p.UserID)
	}

	paymentRecords := make([]PaymentRecord, len(payments))
	for i, p := range payments {
		paymentRecords[i] = PaymentRecord{
			GroupID:    p.GroupID,
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			Amount:     p.Amount,
		}
		collect(p.FromUserID)
		collect(p.ToUserID)
	}

	knownUsers, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userRecords := make([]UserRecord, len(knownUsers))
	for i, u := range knownUsers {
		userRecords[i] = UserRecord{ID: u.ID, Name: u.Name}
	}

	return ComputeBalances(groupID, expenseRecords, shareRecords, paymentRecords, userRecords)
}

// GetSettlementSuggestions computes the settlement plan for a group
func (s *Service) GetSettlementSuggestions(ctx context.Context, groupID int64) ([]SettlementSuggestion, error) {
	balances, err := s.GetGroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return SimplifyPayments(balances), nil
}

// GetPairwiseDetails computes the informational pairwise debt breakdown
func (s *Service) GetPairwiseDetails(ctx context.Context, groupID int64) ([]DebtDetail, error) {
	balances, err := s.GetGroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return PairwiseDetail(balances), nil
}
