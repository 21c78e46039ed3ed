package split

import (
	"errors"
	"fmt"
	"math"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEven       SplitType = "EVEN"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeExact      SplitType = "EXACT"
)

// SplitInput represents a participant in a split with optional values
type SplitInput struct {
	UserID     int64    `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT split
}

// ShareOutput represents the calculated share for a single participant.
// Every participant receives a share, the payer included; the shares of an
// expense always sum to its total amount.
type ShareOutput struct {
	UserID int64   `json:"user_id"`
	Share  float64 `json:"share"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes each participant's share of the total amount
	Calculate(totalAmount float64, participants []SplitInput) ([]ShareOutput, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, participants []SplitInput) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEven:
		return &EvenStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrInvalidExactAmounts  = errors.New("exact amounts must sum to total amount")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrInvalidAmount        = errors.New("amount must be a finite number")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrMissingExactAmount   = errors.New("exact amount required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrDuplicateParticipant = errors.New("duplicate participant in split")
)

// roundToTwoDecimals rounds a float to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// validateCommon checks the constraints shared by every strategy
func validateCommon(totalAmount float64, participants []SplitInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if math.IsNaN(totalAmount) || math.IsInf(totalAmount, 0) {
		return ErrInvalidAmount
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	seen := make(map[int64]bool, len(participants))
	for _, p := range participants {
		if seen[p.UserID] {
			return ErrDuplicateParticipant
		}
		seen[p.UserID] = true
	}
	return nil
}
