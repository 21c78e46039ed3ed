package split

import "math"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(totalAmount float64, participants []SplitInput) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}

	// All participants need percentages and they must sum to 100
	var totalPercentage float64
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if math.IsNaN(*p.Percentage) || math.IsInf(*p.Percentage, 0) {
			return ErrInvalidAmount
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		totalPercentage += *p.Percentage
	}

	// Allow for small floating point errors (99.99 to 100.01)
	if math.Abs(totalPercentage-100) > 0.01 {
		return ErrInvalidPercentages
	}

	return nil
}

// Calculate divides the total amount based on each participant's percentage.
// The last participant absorbs the rounding difference so shares sum exactly
// to the total at two decimals.
func (s *PercentageStrategy) Calculate(totalAmount float64, participants []SplitInput) ([]ShareOutput, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	outputs := make([]ShareOutput, len(participants))
	var totalCalculated float64

	for i, p := range participants {
		share := roundToTwoDecimals((totalAmount * (*p.Percentage)) / 100)
		totalCalculated += share
		outputs[i] = ShareOutput{
			UserID: p.UserID,
			Share:  share,
		}
	}

	difference := roundToTwoDecimals(totalAmount - totalCalculated)
	if difference != 0 {
		last := len(outputs) - 1
		outputs[last].Share = roundToTwoDecimals(outputs[last].Share + difference)
	}

	return outputs, nil
}
