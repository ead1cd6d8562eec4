package usecase

import (
	"context"
	"fmt"
	"time"

	"libraryapi/internal/fee"
)

// Report builds patron status reports.
type Report struct {
	borrows BorrowRepository
	Now     func() time.Time
}

func NewReport(borrows BorrowRepository) *Report {
	return &Report{borrows: borrows, Now: time.Now}
}

// OpenLoan summarizes a loan that is still out.
type OpenLoan struct {
	BookID           int64   `json:"book_id"`
	Title            string  `json:"title"`
	DueDate          string  `json:"due_date"`
	CurrentFeeAmount float64 `json:"current_fee_amount"`
}

// ClosedLoan summarizes a returned loan; its fee is fixed by the return date.
type ClosedLoan struct {
	BookID      int64   `json:"book_id"`
	Title       string  `json:"title"`
	DueDate     string  `json:"due_date"`
	ReturnDate  string  `json:"return_date"`
	DaysOverdue int     `json:"days_overdue"`
	FeeAmount   float64 `json:"fee_amount"`
}

// StatusReport aggregates a patron's current and historical loans.
type StatusReport struct {
	PatronID               string       `json:"patron_id"`
	CurrentlyBorrowedCount int          `json:"currently_borrowed_count"`
	TotalLateFeesOwed      float64      `json:"total_late_fees_owed"`
	CurrentlyBorrowed      []OpenLoan   `json:"currently_borrowed_books"`
	History                []ClosedLoan `json:"borrowing_history"`
}

// Status reports on every loan the patron has ever taken out. Open loans
// are priced as of now; closed loans keep the fee frozen at their return
// date. A patron with no records gets an empty report, not an error.
func (r *Report) Status(ctx context.Context, patronID string) (StatusReport, error) {
	if !ValidPatronID(patronID) {
		return StatusReport{}, ErrInvalidPatronID
	}

	openCount, err := r.borrows.CountOpenByPatron(ctx, patronID)
	if err != nil {
		return StatusReport{}, fmt.Errorf("count open loans: %w", err)
	}
	records, err := r.borrows.ListByPatron(ctx, patronID)
	if err != nil {
		return StatusReport{}, fmt.Errorf("list records: %w", err)
	}

	report := StatusReport{
		PatronID:               patronID,
		CurrentlyBorrowedCount: openCount,
		CurrentlyBorrowed:      []OpenLoan{},
		History:                []ClosedLoan{},
	}

	var total float64
	for _, rec := range records {
		if rec.Open() {
			detail := fee.Calculate(rec.DueAt, r.Now())
			total += detail.Amount
			report.CurrentlyBorrowed = append(report.CurrentlyBorrowed, OpenLoan{
				BookID:           rec.BookID,
				Title:            rec.BookTitle,
				DueDate:          rec.DueAt.Format("2006-01-02"),
				CurrentFeeAmount: detail.Amount,
			})
			continue
		}

		detail := fee.Calculate(rec.DueAt, *rec.ReturnedAt)
		total += detail.Amount
		report.History = append(report.History, ClosedLoan{
			BookID:      rec.BookID,
			Title:       rec.BookTitle,
			DueDate:     rec.DueAt.Format("2006-01-02"),
			ReturnDate:  rec.ReturnedAt.Format("2006-01-02"),
			DaysOverdue: detail.DaysOverdue,
			FeeAmount:   detail.Amount,
		})
	}
	report.TotalLateFeesOwed = fee.Round2(total)

	return report, nil
}
