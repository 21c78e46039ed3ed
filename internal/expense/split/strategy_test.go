package split

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(f float64) *float64 {
	return &f
}

// sumShares adds up all shares in an output slice
func sumShares(outputs []ShareOutput) float64 {
	var total float64
	for _, o := range outputs {
		total += o.Share
	}
	return total
}

func TestEvenStrategy(t *testing.T) {
	tests := []struct {
		name         string
		totalAmount  float64
		participants []SplitInput
		wantErr      error
		wantShares   map[int64]float64
	}{
		{
			name:        "two-way even split",
			totalAmount: 30.00,
			participants: []SplitInput{
				{UserID: 1},
				{UserID: 2},
			},
			wantShares: map[int64]float64{1: 15.00, 2: 15.00},
		},
		{
			name:        "three-way split with rounding remainder on first participant",
			totalAmount: 100.00,
			participants: []SplitInput{
				{UserID: 1},
				{UserID: 2},
				{UserID: 3},
			},
			// 33.33 * 3 = 99.99, remainder 0.01 lands on the first participant
			wantShares: map[int64]float64{1: 33.34, 2: 33.33, 3: 33.33},
		},
		{
			name:         "single participant gets full amount",
			totalAmount:  42.50,
			participants: []SplitInput{{UserID: 7}},
			wantShares:   map[int64]float64{7: 42.50},
		},
		{
			name:         "no participants",
			totalAmount:  10.00,
			participants: []SplitInput{},
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative amount",
			totalAmount:  -5.00,
			participants: []SplitInput{{UserID: 1}},
			wantErr:      ErrNegativeAmount,
		},
		{
			name:         "NaN amount rejected",
			totalAmount:  math.NaN(),
			participants: []SplitInput{{UserID: 1}},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:        "duplicate participant rejected",
			totalAmount: 10.00,
			participants: []SplitInput{
				{UserID: 1},
				{UserID: 1},
			},
			wantErr: ErrDuplicateParticipant,
		},
	}

	strategy := &EvenStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := strategy.Calculate(tt.totalAmount, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}

			if got := sumShares(outputs); math.Abs(got-tt.totalAmount) > 0.001 {
				t.Errorf("shares sum to %v, want %v", got, tt.totalAmount)
			}
			for _, o := range outputs {
				if want := tt.wantShares[o.UserID]; math.Abs(o.Share-want) > 0.001 {
					t.Errorf("user %d share = %v, want %v", o.UserID, o.Share, want)
				}
			}
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name         string
		totalAmount  float64
		participants []SplitInput
		wantErr      error
		wantShares   map[int64]float64
	}{
		{
			name:        "uneven percentages",
			totalAmount: 200.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(70)},
				{UserID: 2, Percentage: floatPtr(30)},
			},
			wantShares: map[int64]float64{1: 140.00, 2: 60.00},
		},
		{
			name:        "rounding difference absorbed by last participant",
			totalAmount: 100.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(33.33)},
				{UserID: 2, Percentage: floatPtr(33.33)},
				{UserID: 3, Percentage: floatPtr(33.34)},
			},
			wantShares: map[int64]float64{1: 33.33, 2: 33.33, 3: 33.34},
		},
		{
			name:        "missing percentage",
			totalAmount: 50.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(50)},
				{UserID: 2},
			},
			wantErr: ErrMissingPercentage,
		},
		{
			name:        "percentages not summing to 100",
			totalAmount: 50.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(50)},
				{UserID: 2, Percentage: floatPtr(40)},
			},
			wantErr: ErrInvalidPercentages,
		},
		{
			name:        "percentage out of range",
			totalAmount: 50.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(120)},
				{UserID: 2, Percentage: floatPtr(-20)},
			},
			wantErr: ErrPercentageOutOfRange,
		},
		{
			name:        "NaN percentage rejected",
			totalAmount: 100.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(math.NaN())},
				{UserID: 2, Percentage: floatPtr(50)},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:        "infinite percentage rejected",
			totalAmount: 100.00,
			participants: []SplitInput{
				{UserID: 1, Percentage: floatPtr(math.Inf(1))},
				{UserID: 2, Percentage: floatPtr(50)},
			},
			wantErr: ErrInvalidAmount,
		},
	}

	strategy := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := strategy.Calculate(tt.totalAmount, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}

			if got := sumShares(outputs); math.Abs(got-tt.totalAmount) > 0.001 {
				t.Errorf("shares sum to %v, want %v", got, tt.totalAmount)
			}
			for _, o := range outputs {
				if want := tt.wantShares[o.UserID]; math.Abs(o.Share-want) > 0.001 {
					t.Errorf("user %d share = %v, want %v", o.UserID, o.Share, want)
				}
			}
		})
	}
}

func TestExactStrategy(t *testing.T) {
	tests := []struct {
		name         string
		totalAmount  float64
		participants []SplitInput
		wantErr      error
	}{
		{
			name:        "exact amounts summing to total",
			totalAmount: 75.50,
			participants: []SplitInput{
				{UserID: 1, Amount: floatPtr(50.50)},
				{UserID: 2, Amount: floatPtr(25.00)},
			},
		},
		{
			name:        "amounts not summing to total",
			totalAmount: 75.50,
			participants: []SplitInput{
				{UserID: 1, Amount: floatPtr(50.00)},
				{UserID: 2, Amount: floatPtr(20.00)},
			},
			wantErr: ErrInvalidExactAmounts,
		},
		{
			name:        "missing amount",
			totalAmount: 10.00,
			participants: []SplitInput{
				{UserID: 1, Amount: floatPtr(10.00)},
				{UserID: 2},
			},
			wantErr: ErrMissingExactAmount,
		},
		{
			name:        "negative share",
			totalAmount: 10.00,
			participants: []SplitInput{
				{UserID: 1, Amount: floatPtr(15.00)},
				{UserID: 2, Amount: floatPtr(-5.00)},
			},
			wantErr: ErrNegativeAmount,
		},
	}

	strategy := &ExactStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := strategy.Calculate(tt.totalAmount, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}

			if got := sumShares(outputs); math.Abs(got-tt.totalAmount) > 0.011 {
				t.Errorf("shares sum to %v, want %v", got, tt.totalAmount)
			}
		})
	}
}

func TestFactory(t *testing.T) {
	factory := NewSplitStrategyFactory()

	for _, splitType := range []SplitType{SplitTypeEven, SplitTypePercentage, SplitTypeExact} {
		strategy, err := factory.Create(splitType)
		if err != nil {
			t.Fatalf("Create(%s) unexpected error: %v", splitType, err)
		}
		if strategy.Type() != splitType {
			t.Errorf("Create(%s).Type() = %s", splitType, strategy.Type())
		}
	}

	if _, err := factory.CreateFromString("TIERED"); err == nil {
		t.Error("Create with unknown type should error")
	}
}
