package usecase

import (
	"context"
	"time"

	"libraryapi/internal/entity"
)

// BookRepository defines the contract for catalog storage.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (entity.Book, error)
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	// List returns the whole catalog sorted by title.
	List(ctx context.Context) ([]entity.Book, error)
	Insert(ctx context.Context, b *entity.Book) error
}

// BorrowRepository defines the contract for loan storage. CreateLoan and
// CloseLoan each run their record write and the availability adjustment
// inside a single transaction.
type BorrowRepository interface {
	CountOpenByPatron(ctx context.Context, patronID string) (int, error)
	// ListByPatron returns open and closed records, newest borrow first,
	// with book title and author joined in.
	ListByPatron(ctx context.Context, patronID string) ([]entity.BorrowRecord, error)
	CreateLoan(ctx context.Context, patronID string, bookID int64, borrowedAt, dueAt time.Time) error
	// CloseLoan stamps the unique open record for the pair and returns it;
	// ErrNotFound when the patron has no open loan for the book.
	CloseLoan(ctx context.Context, patronID string, bookID int64, returnedAt time.Time) (entity.BorrowRecord, error)
}

// PaymentCharge is the gateway's answer to a charge or refund attempt.
// A declined charge is a normal outcome, not an error; errors are reserved
// for transport-level failures reaching the gateway.
type PaymentCharge struct {
	Approved      bool
	TransactionID string
	Message       string
}

// PaymentGateway is the external payment service seam. Swapped for a mock
// in tests.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (PaymentCharge, error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (PaymentCharge, error)
}

// ValidPatronID reports whether id is a well-formed library card number:
// exactly 6 ASCII digits. Card numbers keep their leading zeros, which is
// why they are strings everywhere.
func ValidPatronID(id string) bool {
	if len(id) != 6 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
