package loan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/library-service/internal/loan"
)

func TestFine(t *testing.T) {
	t.Parallel()
	borrow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 30)

	tests := []struct {
		name     string
		returned time.Time
		rate     float64
		want     float64
	}{
		{
			name:     "returned five days late",
			returned: borrow.AddDate(0, 0, 35),
			rate:     1.0,
			want:     5,
		},
		{
			name:     "returned early",
			returned: borrow.AddDate(0, 0, 20),
			rate:     1.0,
			want:     0,
		},
		{
			name:     "returned on the due date",
			returned: due,
			rate:     1.0,
			want:     0,
		},
		{
			name:     "hours past due is not a fined day",
			returned: due.Add(6 * time.Hour),
			rate:     1.0,
			want:     0,
		},
		{
			name:     "ten days late at configured rate",
			returned: borrow.AddDate(0, 0, 40),
			rate:     2.5,
			want:     25,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, loan.Fine(due, tt.returned, tt.rate))
		})
	}
}

func TestPolicy_Period(t *testing.T) {
	t.Parallel()
	p := loan.Policy{PeriodDays: 30, FineRatePerDay: 1}
	require.Equal(t, 30*24*time.Hour, p.Period())
}
