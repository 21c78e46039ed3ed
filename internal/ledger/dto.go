package ledger

import "math"

// BalanceResponse is a single member's net position, rounded for display
type BalanceResponse struct {
	UserID   int64   `json:"user_id"`
	UserName string  `json:"user_name"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"` // "owed", "owes", or "settled"
}

// GroupBalancesResponse represents the balance sheet of one group
type GroupBalancesResponse struct {
	GroupID    int64             `json:"group_id"`
	Balances   []BalanceResponse `json:"balances"`
	AllSettled bool              `json:"all_settled"`
}

// SuggestionResponse is one transfer of the settlement plan
type SuggestionResponse struct {
	FromUserID int64   `json:"from_user_id"`
	FromName   string  `json:"from_name"`
	ToUserID   int64   `json:"to_user_id"`
	ToName     string  `json:"to_name"`
	Amount     float64 `json:"amount"`
}

// SuggestionsResponse represents the settlement plan of one group
type SuggestionsResponse struct {
	GroupID     int64                `json:"group_id"`
	Suggestions []SuggestionResponse `json:"suggestions"`
	AllSettled  bool                 `json:"all_settled"`
}

// DebtDetailResponse is one debtor-to-creditor entry of the pairwise breakdown
type DebtDetailResponse struct {
	DebtorID     int64   `json:"debtor_id"`
	DebtorName   string  `json:"debtor_name"`
	CreditorID   int64   `json:"creditor_id"`
	CreditorName string  `json:"creditor_name"`
	Amount       float64 `json:"amount"`
}

// DebtDetailsResponse represents the pairwise debt breakdown of one group
type DebtDetailsResponse struct {
	GroupID int64                `json:"group_id"`
	Details []DebtDetailResponse `json:"details"`
}

// Amounts are carried as raw float64 throughout the computation and only
// rounded to cents here, at the response boundary.
func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToBalancesResponse converts computed balances to response format
func ToBalancesResponse(groupID int64, balances []Balance) GroupBalancesResponse {
	resp := GroupBalancesResponse{
		GroupID:    groupID,
		Balances:   make([]BalanceResponse, len(balances)),
		AllSettled: true,
	}
	for i, b := range balances {
		status := "settled"
		if b.Amount > Epsilon {
			status = "owed"
		} else if b.Amount < -Epsilon {
			status = "owes"
		}
		if status != "settled" {
			resp.AllSettled = false
		}
		resp.Balances[i] = BalanceResponse{
			UserID:   b.UserID,
			UserName: b.UserName,
			Amount:   roundToTwoDecimals(b.Amount),
			Status:   status,
		}
	}

	return resp
}

// ToSuggestionsResponse converts a settlement plan to response format
func ToSuggestionsResponse(groupID int64, suggestions []SettlementSuggestion) SuggestionsResponse {
	resp := SuggestionsResponse{
		GroupID:     groupID,
		Suggestions: make([]SuggestionResponse, len(suggestions)),
		AllSettled:  len(suggestions) == 0,
	}
	for i, s := range suggestions {
		resp.Suggestions[i] = SuggestionResponse{
			FromUserID: s.FromUserID,
			FromName:   s.FromName,
			ToUserID:   s.ToUserID,
			ToName:     s.ToName,
			Amount:     roundToTwoDecimals(s.Amount),
		}
	}

	return resp
}

// ToDetailsResponse converts a pairwise breakdown to response format
func ToDetailsResponse(groupID int64, details []DebtDetail) DebtDetailsResponse {
	resp := DebtDetailsResponse{
		GroupID: groupID,
		Details: make([]DebtDetailResponse, len(details)),
	}
	for i, d := range details {
		resp.Details[i] = DebtDetailResponse{
			DebtorID:     d.DebtorID,
			DebtorName:   d.DebtorName,
			CreditorID:   d.CreditorID,
			CreditorName: d.CreditorName,
			Amount:       roundToTwoDecimals(d.Amount),
		}
	}

	return resp
}
