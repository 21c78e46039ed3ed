package payment

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique constraint violation",
			err:  &pq.Error{Code: "23505"},
			want: true,
		},
		{
			name: "wrapped unique constraint violation",
			err:  fmt.Errorf("failed to create payment: %w", &pq.Error{Code: "23505"}),
			want: true,
		},
		{
			name: "other postgres error",
			err:  &pq.Error{Code: "23503"},
			want: false,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
