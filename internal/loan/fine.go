package loan

import "time"

// Policy holds the lending knobs that are configuration, not code.
type Policy struct {
	PeriodDays     int     `envconfig:"LOAN_PERIOD_DAYS" default:"30"`
	FineRatePerDay float64 `envconfig:"FINE_RATE_PER_DAY" default:"1"`
}

func (p Policy) Period() time.Duration {
	return time.Duration(p.PeriodDays) * 24 * time.Hour
}

// OverdueDays counts whole days elapsed past the due date. A return a few
// hours late is not a fined day.
func OverdueDays(due, returned time.Time) int {
	if !returned.After(due) {
		return 0
	}
	return int(returned.Sub(due).Hours() / 24)
}

// Fine is computed exactly once, at the return transition.
func Fine(due, returned time.Time, ratePerDay float64) float64 {
	return float64(OverdueDays(due, returned)) * ratePerDay
}
