package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/tabshare/tabshare/internal/expense"
	"github.com/tabshare/tabshare/internal/group"
	"github.com/tabshare/tabshare/internal/payment"
	"github.com/tabshare/tabshare/internal/user"
)

type fakeGroupSource struct {
	groups map[int64]*group.Group
}

func (f *fakeGroupSource) GetByID(_ context.Context, id int64) (*group.Group, error) {
	return f.groups[id], nil
}

type fakeExpenseSource struct {
	expenses     []*expense.Expense
	participants []*expense.Participant
}

func (f *fakeExpenseSource) ListAllByGroupID(_ context.Context, groupID int64) ([]*expense.Expense, error) {
	var out []*expense.Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseSource) ListParticipantsByGroupID(_ context.Context, _ int64) ([]*expense.Participant, error) {
	return f.participants, nil
}

type fakePaymentSource struct {
	payments []*payment.Payment
}

func (f *fakePaymentSource) ListAllByGroupID(_ context.Context, groupID int64) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range f.payments {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserSource struct {
	users map[int64]*user.User
}

func (f *fakeUserSource) GetByIDs(_ context.Context, ids []int64) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestService() *Service {
	groups := &fakeGroupSource{groups: map[int64]*group.Group{
		1: {ID: 1, Name: "Trip"},
		2: {ID: 2, Name: "Empty"},
	}}
	expenses := &fakeExpenseSource{
		expenses: []*expense.Expense{
			{ID: 10, GroupID: 1, PayerID: 1, Amount: 30},
		},
		participants: []*expense.Participant{
			{ID: 100, ExpenseID: 10, UserID: 1, Share: 15},
			{ID: 101, ExpenseID: 10, UserID: 2, Share: 15},
		},
	}
	payments := &fakePaymentSource{}
	users := &fakeUserSource{users: map[int64]*user.User{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
	}}

	return NewService(groups, expenses, payments, users)
}

func TestServiceGetGroupBalances(t *testing.T) {
	svc := newTestService()

	balances, err := svc.GetGroupBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetGroupBalances returned error: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}

	for _, b := range balances {
		switch b.UserID {
		case 1:
			if !almostEqual(b.Amount, 15) {
				t.Errorf("Alice balance = %v, want 15", b.Amount)
			}
		case 2:
			if !almostEqual(b.Amount, -15) {
				t.Errorf("Bob balance = %v, want -15", b.Amount)
			}
		}
	}
}

func TestServiceGroupNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetGroupBalances(context.Background(), 99)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}

func TestServiceEmptyGroup(t *testing.T) {
	svc := newTestService()

	balances, err := svc.GetGroupBalances(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetGroupBalances returned error: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected empty balances, got %d", len(balances))
	}

	suggestions, err := svc.GetSettlementSuggestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetSettlementSuggestions returned error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %d", len(suggestions))
	}

	resp := ToSuggestionsResponse(2, suggestions)
	if !resp.AllSettled {
		t.Error("expected all_settled for empty group")
	}
}

func TestServiceGetSettlementSuggestions(t *testing.T) {
	svc := newTestService()

	suggestions, err := svc.GetSettlementSuggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSettlementSuggestions returned error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.FromUserID != 2 || s.ToUserID != 1 || !almostEqual(s.Amount, 15) {
		t.Errorf("unexpected suggestion %+v", s)
	}
}

func TestServiceGetPairwiseDetails(t *testing.T) {
	svc := newTestService()

	details, err := svc.GetPairwiseDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPairwiseDetails returned error: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	d := details[0]
	if d.DebtorID != 2 || d.CreditorID != 1 || !almostEqual(d.Amount, 15) {
		t.Errorf("unexpected detail %+v", d)
	}
}
