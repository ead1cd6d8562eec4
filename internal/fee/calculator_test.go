package fee_test

import (
	"testing"
	"time"

	"libraryapi/internal/fee"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_TieredSchedule(t *testing.T) {
	due := date(2025, time.March, 1)

	tests := []struct {
		name        string
		refAt       time.Time
		wantAmount  float64
		wantOverdue int
	}{
		{"returned early", date(2025, time.February, 20), 0.00, 0},
		{"due today", due, 0.00, 0},
		{"one day late", date(2025, time.March, 2), 0.50, 1},
		{"end of tier one", date(2025, time.March, 8), 3.50, 7},
		{"first tier two day", date(2025, time.March, 9), 4.50, 8},
		{"hits the cap exactly", date(2025, time.March, 23), 15.00, 22},
		{"cap holds past 22 days", date(2025, time.March, 31), 15.00, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fee.Calculate(due, tt.refAt)
			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.Equal(t, tt.wantOverdue, got.DaysOverdue)
		})
	}
}

func TestCalculate_IgnoresTimeOfDay(t *testing.T) {
	// Due just before midnight, returned just after: a single calendar
	// day apart even though barely any hours passed.
	due := time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC)
	ref := time.Date(2025, time.March, 2, 0, 1, 0, 0, time.UTC)

	got := fee.Calculate(due, ref)
	assert.Equal(t, 1, got.DaysOverdue)
	assert.Equal(t, 0.50, got.Amount)

	// And the reverse: 23 hours late on the same calendar day is not
	// overdue at all.
	due = time.Date(2025, time.March, 1, 0, 30, 0, 0, time.UTC)
	ref = time.Date(2025, time.March, 1, 23, 30, 0, 0, time.UTC)

	got = fee.Calculate(due, ref)
	assert.Equal(t, 0, got.DaysOverdue)
	assert.Equal(t, 0.00, got.Amount)
	assert.Equal(t, "Not overdue.", got.Status)
}

func TestCalculate_StatusText(t *testing.T) {
	due := date(2025, time.March, 1)

	got := fee.Calculate(due, date(2025, time.March, 4))
	assert.Equal(t, "Book is 3 day(s) overdue.", got.Status)
}
