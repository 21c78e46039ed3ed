package split

import "math"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant carries a specific exact share (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(totalAmount float64, participants []SplitInput) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}

	// All participants need amounts and they must sum to the total
	var totalExact float64
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingExactAmount
		}
		if math.IsNaN(*p.Amount) || math.IsInf(*p.Amount, 0) {
			return ErrInvalidAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		totalExact += *p.Amount
	}

	// Allow for small floating point errors
	if math.Abs(totalExact-totalAmount) > 0.01 {
		return ErrInvalidExactAmounts
	}

	return nil
}

// Calculate returns the exact shares specified for each participant
func (s *ExactStrategy) Calculate(totalAmount float64, participants []SplitInput) ([]ShareOutput, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	outputs := make([]ShareOutput, len(participants))
	for i, p := range participants {
		outputs[i] = ShareOutput{
			UserID: p.UserID,
			Share:  roundToTwoDecimals(*p.Amount),
		}
	}

	return outputs, nil
}
