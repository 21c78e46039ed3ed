// Package ledger computes group balances and settlement plans.
//
// Everything in this package is a pure function over in-memory snapshots:
// callers fetch the group's expenses, shares and payments, pass them in, and
// get values back. Nothing here reads ambient state, caches results or
// mutates its inputs, so identical inputs always produce identical outputs.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrMalformedAmount is returned when a record carries an amount that is
// negative, NaN or infinite. The whole computation fails rather than
// producing a partial result.
var ErrMalformedAmount = errors.New("malformed amount")

// Epsilon is the tolerance below which a balance counts as settled.
// Currency amounts carry two decimals, so anything under a cent is noise.
const Epsilon = 0.01

// UnknownUserName is substituted when a record references a user missing
// from the supplied user list. Display degrades instead of failing.
const UnknownUserName = "Unknown user"

// ExpenseRecord is the slice of an expense the balance computation needs
type ExpenseRecord struct {
	ID      int64
	GroupID int64
	PayerID int64
	Amount  float64
}

// ShareRecord attributes part of an expense's amount to one participant
type ShareRecord struct {
	ExpenseID int64
	UserID    int64
	Share     float64
}

// PaymentRecord is a transfer that reduces debt between two users
type PaymentRecord struct {
	GroupID    int64
	FromUserID int64
	ToUserID   int64
	Amount     float64
}

// UserRecord resolves user IDs to display names
type UserRecord struct {
	ID   int64
	Name string
}

// Balance is one user's net position within a group.
// Positive = owed money, negative = owes money, zero = settled.
type Balance struct {
	UserID   int64
	UserName string
	Amount   float64
}

// SettlementSuggestion is a proposed transfer that moves the group's
// balances closer to all-zero.
type SettlementSuggestion struct {
	FromUserID int64
	FromName   string
	ToUserID   int64
	ToName     string
	Amount     float64
}

// DebtDetail is one cell of the informational pairwise breakdown: the part
// of a debtor's total debt attributed to one creditor.
type DebtDetail struct {
	DebtorID     int64
	DebtorName   string
	CreditorID   int64
	CreditorName string
	Amount       float64
}

// ComputeBalances computes each member's net balance for one group.
//
// For every expense the payer is credited the full amount they fronted, and
// every participant (payer included) is debited their share. For every
// payment the sender is credited and the receiver debited, cancelling debt
// in the opposite direction of expense shares. Amounts accumulate in raw
// float64; rounding happens only at presentation so error does not compound
// across many transactions.
//
// Records for other groups are ignored. Malformed amounts (NaN, infinite or
// negative) are a data-integrity error and reported immediately rather than
// coerced, so bookkeeping bugs upstream stay visible.
func ComputeBalances(groupID int64, expenses []ExpenseRecord, shares []ShareRecord, payments []PaymentRecord, users []UserRecord) ([]Balance, error) {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	amounts := make(map[int64]float64)
	var order []int64
	touch := func(userID int64) {
		if _, seen := amounts[userID]; !seen {
			amounts[userID] = 0
			order = append(order, userID)
		}
	}

	inGroup := make(map[int64]bool, len(expenses))
	for _, e := range expenses {
		if e.GroupID != groupID {
			continue
		}
		if err := validAmount(e.Amount); err != nil {
			return nil, fmt.Errorf("expense %d: %w", e.ID, err)
		}
		inGroup[e.ID] = true

		touch(e.PayerID)
		amounts[e.PayerID] += e.Amount
	}

	for _, s := range shares {
		if !inGroup[s.ExpenseID] {
			continue
		}
		if err := validAmount(s.Share); err != nil {
			return nil, fmt.Errorf("share for expense %d, user %d: %w", s.ExpenseID, s.UserID, err)
		}

		touch(s.UserID)
		amounts[s.UserID] -= s.Share
	}

	for _, p := range payments {
		if p.GroupID != groupID {
			continue
		}
		if err := validAmount(p.Amount); err != nil {
			return nil, fmt.Errorf("payment from user %d to user %d: %w", p.FromUserID, p.ToUserID, err)
		}

		touch(p.FromUserID)
		touch(p.ToUserID)
		amounts[p.FromUserID] += p.Amount
		amounts[p.ToUserID] -= p.Amount
	}

	balances := make([]Balance, 0, len(order))
	for _, userID := range order {
		name, ok := names[userID]
		if !ok {
			name = UnknownUserName
		}
		balances = append(balances, Balance{
			UserID:   userID,
			UserName: name,
			Amount:   amounts[userID],
		})
	}

	// Deterministic output: largest positions first, insertion order on ties
	sort.SliceStable(balances, func(i, j int) bool {
		return math.Abs(balances[i].Amount) > math.Abs(balances[j].Amount)
	})

	return balances, nil
}

// SimplifyPayments produces a settlement plan for the given balances using
// greedy largest-magnitude matching: each round pairs the biggest creditor
// with the biggest debtor and transfers the smaller of the two positions.
//
// The plan settles n non-zero participants in at most n-1 transfers and
// never pairs a user with themselves. Finding the theoretical minimum
// number of transfers is NP-hard; this plan instead guarantees that every
// creditor receives exactly their balance and every debtor pays exactly
// their debt. If total credit and total debt disagree the inputs are
// inconsistent: the plan proceeds until one side is exhausted and leaves
// the residual unresolved for the caller to surface.
func SimplifyPayments(balances []Balance) []SettlementSuggestion {
	var creditors, debtors []Balance
	for _, b := range balances {
		switch {
		case b.Amount > Epsilon:
			creditors = append(creditors, b)
		case b.Amount < -Epsilon:
			debtors = append(debtors, b)
		}
	}

	var suggestions []SettlementSuggestion
	for len(creditors) > 0 && len(debtors) > 0 {
		ci := maxCreditor(creditors)
		di := maxDebtor(debtors)

		amount := math.Min(creditors[ci].Amount, -debtors[di].Amount)
		suggestions = append(suggestions, SettlementSuggestion{
			FromUserID: debtors[di].UserID,
			FromName:   debtors[di].UserName,
			ToUserID:   creditors[ci].UserID,
			ToName:     creditors[ci].UserName,
			Amount:     amount,
		})

		creditors[ci].Amount -= amount
		debtors[di].Amount += amount

		if creditors[ci].Amount <= Epsilon {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
		if debtors[di].Amount >= -Epsilon {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
	}

	return suggestions
}

// PairwiseDetail computes the informational "who owes what to whom" matrix:
// each debtor's total debt is split across creditors in proportion to each
// creditor's slice of the total credit. This is a different view from
// SimplifyPayments and will not generally agree with it on who pays whom;
// it exists for display, not for settling.
func PairwiseDetail(balances []Balance) []DebtDetail {
	var creditors, debtors []Balance
	var totalCredit float64
	for _, b := range balances {
		switch {
		case b.Amount > Epsilon:
			creditors = append(creditors, b)
			totalCredit += b.Amount
		case b.Amount < -Epsilon:
			debtors = append(debtors, b)
		}
	}

	if totalCredit == 0 {
		return nil
	}

	var details []DebtDetail
	for _, d := range debtors {
		debt := -d.Amount
		for _, c := range creditors {
			amount := debt * (c.Amount / totalCredit)
			if amount < Epsilon {
				continue
			}
			details = append(details, DebtDetail{
				DebtorID:     d.UserID,
				DebtorName:   d.UserName,
				CreditorID:   c.UserID,
				CreditorName: c.UserName,
				Amount:       amount,
			})
		}
	}

	return details
}

func maxCreditor(creditors []Balance) int {
	best := 0
	for i, c := range creditors {
		if c.Amount > creditors[best].Amount {
			best = i
		}
	}
	return best
}

func maxDebtor(debtors []Balance) int {
	best := 0
	for i, d := range debtors {
		if d.Amount < debtors[best].Amount {
			best = i
		}
	}
	return best
}

func validAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: not a finite number", ErrMalformedAmount)
	}
	if v < 0 {
		return fmt.Errorf("%w: negative", ErrMalformedAmount)
	}
	return nil
}
