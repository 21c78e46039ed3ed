package split

// =============================================================================
// EVEN SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EvenStrategy implements the Strategy interface for even splits
type EvenStrategy struct{}

// Type returns the split type identifier
func (s *EvenStrategy) Type() SplitType {
	return SplitTypeEven
}

// Validate checks if the inputs are valid for an even split
func (s *EvenStrategy) Validate(totalAmount float64, participants []SplitInput) error {
	return validateCommon(totalAmount, participants)
}

// Calculate divides the total amount evenly among all participants.
// The payer gets a share like everyone else; any rounding remainder lands on
// the first participant so the shares sum exactly to the total at two decimals.
func (s *EvenStrategy) Calculate(totalAmount float64, participants []SplitInput) ([]ShareOutput, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	sharePerPerson := roundToTwoDecimals(totalAmount / float64(len(participants)))

	totalDistributed := sharePerPerson * float64(len(participants))
	roundingDifference := roundToTwoDecimals(totalAmount - totalDistributed)

	outputs := make([]ShareOutput, len(participants))
	for i, p := range participants {
		share := sharePerPerson
		if i == 0 && roundingDifference != 0 {
			share = roundToTwoDecimals(share + roundingDifference)
		}
		outputs[i] = ShareOutput{
			UserID: p.UserID,
			Share:  share,
		}
	}

	return outputs, nil
}
