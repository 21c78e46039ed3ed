package ledger

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestComputeBalancesEvenSplit(t *testing.T) {
	// Alice fronts $30 split equally with Bob
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 30},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 15},
		{ExpenseID: 1, UserID: 2, Share: 15},
	}
	users := []UserRecord{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}

	balances, err := ComputeBalances(1, expenses, shares, nil, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
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
			if b.UserName != "Alice" {
				t.Errorf("user 1 name = %q, want Alice", b.UserName)
			}
		case 2:
			if !almostEqual(b.Amount, -15) {
				t.Errorf("Bob balance = %v, want -15", b.Amount)
			}
		default:
			t.Errorf("unexpected user %d in balances", b.UserID)
		}
	}
}

func TestComputeBalancesConservation(t *testing.T) {
	// Shares always sum to the expense total, so net balances sum to zero
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 100},
		{ID: 2, GroupID: 1, PayerID: 2, Amount: 33.33},
		{ID: 3, GroupID: 1, PayerID: 3, Amount: 7.5},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 33.34},
		{ExpenseID: 1, UserID: 2, Share: 33.33},
		{ExpenseID: 1, UserID: 3, Share: 33.33},
		{ExpenseID: 2, UserID: 1, Share: 16.67},
		{ExpenseID: 2, UserID: 2, Share: 16.66},
		{ExpenseID: 3, UserID: 2, Share: 3.75},
		{ExpenseID: 3, UserID: 3, Share: 3.75},
	}
	payments := []PaymentRecord{
		{GroupID: 1, FromUserID: 3, ToUserID: 1, Amount: 10},
	}
	users := []UserRecord{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}

	balances, err := ComputeBalances(1, expenses, shares, payments, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}

	var sum float64
	for _, b := range balances {
		sum += b.Amount
	}
	if !almostEqual(sum, 0) {
		t.Errorf("balance sum = %v, want 0", sum)
	}
}

func TestComputeBalancesPaymentsReduceDebt(t *testing.T) {
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 40},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 20},
		{ExpenseID: 1, UserID: 2, Share: 20},
	}
	payments := []PaymentRecord{
		{GroupID: 1, FromUserID: 2, ToUserID: 1, Amount: 20},
	}
	users := []UserRecord{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}

	balances, err := ComputeBalances(1, expenses, shares, payments, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}

	for _, b := range balances {
		if !almostEqual(b.Amount, 0) {
			t.Errorf("user %d balance = %v, want 0 after full repayment", b.UserID, b.Amount)
		}
	}
}

func TestComputeBalancesIgnoresOtherGroups(t *testing.T) {
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 30},
		{ID: 2, GroupID: 2, PayerID: 2, Amount: 999},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 15},
		{ExpenseID: 1, UserID: 2, Share: 15},
		{ExpenseID: 2, UserID: 2, Share: 999},
	}
	payments := []PaymentRecord{
		{GroupID: 2, FromUserID: 1, ToUserID: 2, Amount: 500},
	}
	users := []UserRecord{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}

	balances, err := ComputeBalances(1, expenses, shares, payments, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
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

func TestComputeBalancesUnknownUser(t *testing.T) {
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 7, Amount: 10},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 7, Share: 10},
	}

	balances, err := ComputeBalances(1, expenses, shares, nil, nil)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(balances))
	}
	if balances[0].UserName != UnknownUserName {
		t.Errorf("name = %q, want %q", balances[0].UserName, UnknownUserName)
	}
}

func TestComputeBalancesEmptyGroup(t *testing.T) {
	balances, err := ComputeBalances(1, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected empty balances, got %d", len(balances))
	}
}

func TestComputeBalancesOrdering(t *testing.T) {
	// Output sorts by descending balance magnitude
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 90},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 30},
		{ExpenseID: 1, UserID: 2, Share: 50},
		{ExpenseID: 1, UserID: 3, Share: 10},
	}
	users := []UserRecord{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}

	balances, err := ComputeBalances(1, expenses, shares, nil, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}

	for i := 1; i < len(balances); i++ {
		if math.Abs(balances[i].Amount) > math.Abs(balances[i-1].Amount) {
			t.Errorf("balances out of order at %d: %v after %v", i, balances[i].Amount, balances[i-1].Amount)
		}
	}
}

func TestComputeBalancesIdempotent(t *testing.T) {
	// Identical inputs produce identical output, element for element
	expenses := []ExpenseRecord{
		{ID: 1, GroupID: 1, PayerID: 1, Amount: 100},
		{ID: 2, GroupID: 1, PayerID: 2, Amount: 60.4},
	}
	shares := []ShareRecord{
		{ExpenseID: 1, UserID: 1, Share: 33.34},
		{ExpenseID: 1, UserID: 2, Share: 33.33},
		{ExpenseID: 1, UserID: 3, Share: 33.33},
		{ExpenseID: 2, UserID: 2, Share: 30.2},
		{ExpenseID: 2, UserID: 3, Share: 30.2},
	}
	payments := []PaymentRecord{
		{GroupID: 1, FromUserID: 3, ToUserID: 1, Amount: 12.5},
	}
	users := []UserRecord{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}

	first, err := ComputeBalances(1, expenses, shares, payments, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}
	second, err := ComputeBalances(1, expenses, shares, payments, users)
	if err != nil {
		t.Fatalf("ComputeBalances returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeBalancesMalformedAmounts(t *testing.T) {
	users := []UserRecord{{ID: 1, Name: "A"}}

	tests := []struct {
		name     string
		expenses []ExpenseRecord
		shares   []ShareRecord
		payments []PaymentRecord
	}{
		{
			name:     "NaN expense amount",
			expenses: []ExpenseRecord{{ID: 1, GroupID: 1, PayerID: 1, Amount: math.NaN()}},
		},
		{
			name:     "negative expense amount",
			expenses: []ExpenseRecord{{ID: 1, GroupID: 1, PayerID: 1, Amount: -5}},
		},
		{
			name:     "infinite share",
			expenses: []ExpenseRecord{{ID: 1, GroupID: 1, PayerID: 1, Amount: 10}},
			shares:   []ShareRecord{{ExpenseID: 1, UserID: 1, Share: math.Inf(1)}},
		},
		{
			name:     "negative payment",
			payments: []PaymentRecord{{GroupID: 1, FromUserID: 1, ToUserID: 2, Amount: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBalances(1, tt.expenses, tt.shares, tt.payments, users)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedAmount) {
				t.Errorf("error = %v, want ErrMalformedAmount", err)
			}
		})
	}
}

func TestSimplifyPaymentsTwoUsers(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "Alice", Amount: 15},
		{UserID: 2, UserName: "Bob", Amount: -15},
	}

	suggestions := SimplifyPayments(balances)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	if s.FromUserID != 2 || s.ToUserID != 1 {
		t.Errorf("suggestion %d -> %d, want 2 -> 1", s.FromUserID, s.ToUserID)
	}
	if !almostEqual(s.Amount, 15) {
		t.Errorf("amount = %v, want 15", s.Amount)
	}
}

func TestSimplifyPaymentsExactAmounts(t *testing.T) {
	// One debtor covering two creditors pays each exactly their balance
	balances := []Balance{
		{UserID: 1, UserName: "Alice", Amount: 30.25},
		{UserID: 2, UserName: "Bob", Amount: 20},
		{UserID: 3, UserName: "Carol", Amount: -50.25},
	}

	suggestions := SimplifyPayments(balances)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}

	byCreditor := make(map[int64]float64)
	for _, s := range suggestions {
		if s.FromUserID != 3 {
			t.Errorf("payer = %d, want 3", s.FromUserID)
		}
		byCreditor[s.ToUserID] += s.Amount
	}
	if !almostEqual(byCreditor[1], 30.25) {
		t.Errorf("Alice receives %v, want 30.25", byCreditor[1])
	}
	if !almostEqual(byCreditor[2], 20) {
		t.Errorf("Bob receives %v, want 20.00", byCreditor[2])
	}
}

func TestSimplifyPaymentsSinglePayer(t *testing.T) {
	// One member paid for everyone: the other n-1 each owe them one transfer
	balances := []Balance{
		{UserID: 1, UserName: "Payer", Amount: 75},
		{UserID: 2, UserName: "B", Amount: -25},
		{UserID: 3, UserName: "C", Amount: -25},
		{UserID: 4, UserName: "D", Amount: -25},
	}

	suggestions := SimplifyPayments(balances)
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.ToUserID != 1 {
			t.Errorf("transfer to user %d, want 1", s.ToUserID)
		}
		if !almostEqual(s.Amount, 25) {
			t.Errorf("amount = %v, want 25", s.Amount)
		}
	}
}

func TestSimplifyPaymentsSettlesAllBalances(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "A", Amount: 42.17},
		{UserID: 2, UserName: "B", Amount: 13.9},
		{UserID: 3, UserName: "C", Amount: -20.07},
		{UserID: 4, UserName: "D", Amount: -36},
	}

	suggestions := SimplifyPayments(balances)

	remaining := make(map[int64]float64, len(balances))
	for _, b := range balances {
		remaining[b.UserID] = b.Amount
	}
	for _, s := range suggestions {
		if s.Amount <= 0 {
			t.Errorf("non-positive suggestion amount %v", s.Amount)
		}
		if s.FromUserID == s.ToUserID {
			t.Errorf("self transfer for user %d", s.FromUserID)
		}
		remaining[s.FromUserID] += s.Amount
		remaining[s.ToUserID] -= s.Amount
	}
	for userID, amount := range remaining {
		if !almostEqual(amount, 0) {
			t.Errorf("user %d left with %v after applying plan", userID, amount)
		}
	}
	if len(suggestions) > len(balances)-1 {
		t.Errorf("plan uses %d transfers for %d participants", len(suggestions), len(balances))
	}
}

func TestSimplifyPaymentsAllSettled(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "A", Amount: 0.004},
		{UserID: 2, UserName: "B", Amount: -0.004},
	}

	if got := SimplifyPayments(balances); len(got) != 0 {
		t.Errorf("expected no suggestions for settled balances, got %d", len(got))
	}
	if got := SimplifyPayments(nil); len(got) != 0 {
		t.Errorf("expected no suggestions for empty balances, got %d", len(got))
	}
}

func TestSimplifyPaymentsDeterministic(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "A", Amount: 50},
		{UserID: 2, UserName: "B", Amount: -30},
		{UserID: 3, UserName: "C", Amount: -20},
	}

	first := SimplifyPayments(balances)
	second := SimplifyPayments([]Balance{
		{UserID: 1, UserName: "A", Amount: 50},
		{UserID: 2, UserName: "B", Amount: -30},
		{UserID: 3, UserName: "C", Amount: -20},
	})

	if len(first) != len(second) {
		t.Fatalf("plan lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("plans differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSimplifyPaymentsDoesNotMutateInput(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "A", Amount: 50},
		{UserID: 2, UserName: "B", Amount: -50},
	}

	SimplifyPayments(balances)

	if balances[0].Amount != 50 || balances[1].Amount != -50 {
		t.Errorf("input balances mutated: %+v", balances)
	}
}

func TestPairwiseDetailProportional(t *testing.T) {
	// Carol's 30 debt splits 2:1 between Alice (20 credit) and Bob (10 credit)
	balances := []Balance{
		{UserID: 1, UserName: "Alice", Amount: 20},
		{UserID: 2, UserName: "Bob", Amount: 10},
		{UserID: 3, UserName: "Carol", Amount: -30},
	}

	details := PairwiseDetail(balances)
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}

	byCreditor := make(map[int64]float64)
	for _, d := range details {
		if d.DebtorID != 3 {
			t.Errorf("debtor = %d, want 3", d.DebtorID)
		}
		byCreditor[d.CreditorID] = d.Amount
	}
	if !almostEqual(byCreditor[1], 20) {
		t.Errorf("owed to Alice = %v, want 20", byCreditor[1])
	}
	if !almostEqual(byCreditor[2], 10) {
		t.Errorf("owed to Bob = %v, want 10", byCreditor[2])
	}
}

func TestPairwiseDetailDropsSubCentEntries(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "A", Amount: 1000},
		{UserID: 2, UserName: "B", Amount: 0.02},
		{UserID: 3, UserName: "C", Amount: -1000.02},
	}

	details := PairwiseDetail(balances)
	for _, d := range details {
		if d.Amount < Epsilon {
			t.Errorf("detail below epsilon: %+v", d)
		}
	}
}

func TestPairwiseDetailNoCreditors(t *testing.T) {
	if got := PairwiseDetail(nil); got != nil {
		t.Errorf("expected nil details, got %v", got)
	}
	if got := PairwiseDetail([]Balance{{UserID: 1, UserName: "A", Amount: 0}}); got != nil {
		t.Errorf("expected nil details for settled group, got %v", got)
	}
}
