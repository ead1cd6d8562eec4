package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/fee"
)

const (
	// LoanPeriodDays is how long a patron may keep a book.
	LoanPeriodDays = 14
	// MaxOpenLoans is the borrowing limit per patron.
	MaxOpenLoans = 5
)

// Lending runs the borrow and return workflows.
type Lending struct {
	books   BookRepository
	borrows BorrowRepository
	Now     func() time.Time
}

func NewLending(books BookRepository, borrows BorrowRepository) *Lending {
	return &Lending{books: books, borrows: borrows, Now: time.Now}
}

// BorrowReceipt describes a successful borrow.
type BorrowReceipt struct {
	Book    entity.Book `json:"book"`
	DueAt   time.Time   `json:"due_at"`
	Message string      `json:"message"`
}

// Borrow lends a book to a patron. Eligibility checks run in a fixed
// order and short-circuit on the first failure: patron id format, book
// existence, availability, then the open-loan limit.
func (l *Lending) Borrow(ctx context.Context, patronID string, bookID int64) (BorrowReceipt, error) {
	if !ValidPatronID(patronID) {
		return BorrowReceipt{}, ErrInvalidPatronID
	}

	book, err := l.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BorrowReceipt{}, ErrBookNotFound
		}
		return BorrowReceipt{}, fmt.Errorf("load book: %w", err)
	}
	if book.AvailableCopies <= 0 {
		return BorrowReceipt{}, ErrBookUnavailable
	}

	open, err := l.borrows.CountOpenByPatron(ctx, patronID)
	if err != nil {
		return BorrowReceipt{}, fmt.Errorf("count open loans: %w", err)
	}
	if open >= MaxOpenLoans {
		return BorrowReceipt{}, ErrBorrowLimitReached
	}

	borrowedAt := l.Now()
	dueAt := borrowedAt.AddDate(0, 0, LoanPeriodDays)
	if err := l.borrows.CreateLoan(ctx, patronID, bookID, borrowedAt, dueAt); err != nil {
		return BorrowReceipt{}, fmt.Errorf("create borrow record: %w", err)
	}

	book.AvailableCopies--
	return BorrowReceipt{
		Book:    book,
		DueAt:   dueAt,
		Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s.", book.Title, dueAt.Format("2006-01-02")),
	}, nil
}

// ReturnReceipt describes a processed return, including the late fee now
// permanently fixed by the recorded return time.
type ReturnReceipt struct {
	Record  entity.BorrowRecord `json:"record"`
	Fee     fee.Detail          `json:"fee"`
	Message string              `json:"message"`
}

// Return closes the patron's open loan for the book, restores a copy to
// the shelf, and computes the late fee against the just-recorded return
// time. The record write and the availability bump happen in one
// transaction inside the repository.
func (l *Lending) Return(ctx context.Context, patronID string, bookID int64) (ReturnReceipt, error) {
	if !ValidPatronID(patronID) {
		return ReturnReceipt{}, ErrInvalidPatronID
	}

	returnedAt := l.Now()
	rec, err := l.borrows.CloseLoan(ctx, patronID, bookID, returnedAt)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReturnReceipt{}, ErrNoActiveLoan
		}
		return ReturnReceipt{}, fmt.Errorf("close loan: %w", err)
	}

	detail := fee.Calculate(rec.DueAt, returnedAt)
	msg := fmt.Sprintf("Successfully returned %q.", rec.BookTitle)
	if detail.Amount > 0 {
		msg += fmt.Sprintf(" A late fee of $%.2f has been added to your account for %d day(s) overdue.",
			detail.Amount, detail.DaysOverdue)
	}

	return ReturnReceipt{Record: rec, Fee: detail, Message: msg}, nil
}
