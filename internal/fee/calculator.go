package fee

import (
	"fmt"
	"math"
	"time"
)

// Late fee constants per loan.
const (
	Tier1DailyRate = 0.50  // days 1-7 overdue
	Tier2DailyRate = 1.00  // days 8 and beyond
	Tier1Days      = 7
	MaxPerBook     = 15.00 // fee cap per book per loan
)

// Detail is the outcome of a fee calculation. It is derived, never stored.
type Detail struct {
	Amount      float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
	Status      string  `json:"status"`
}

// Calculate computes the tiered late fee for a loan due at dueAt, as of
// refAt. For an open loan refAt is "now"; for a closed loan it is the
// recorded return time, so the fee stays fixed after the return.
//
// Overdue days are counted on calendar dates only; time of day is
// discarded so a loan is never fractionally overdue.
func Calculate(dueAt, refAt time.Time) Detail {
	days := calendarDays(refAt) - calendarDays(dueAt)
	if days <= 0 {
		return Detail{Amount: 0, DaysOverdue: 0, Status: "Not overdue."}
	}

	tier1 := days
	if tier1 > Tier1Days {
		tier1 = Tier1Days
	}
	amount := float64(tier1) * Tier1DailyRate
	if days > Tier1Days {
		amount += float64(days-Tier1Days) * Tier2DailyRate
	}
	amount = math.Min(amount, MaxPerBook)

	return Detail{
		Amount:      Round2(amount),
		DaysOverdue: days,
		Status:      fmt.Sprintf("Book is %d day(s) overdue.", days),
	}
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// calendarDays truncates t to its calendar date in its own location and
// counts whole days since the epoch.
func calendarDays(t time.Time) int {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}
