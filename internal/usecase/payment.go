package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libraryapi/internal/fee"
)

// TransactionIDPrefix marks transaction ids issued by the payment gateway.
const TransactionIDPrefix = "txn_"

// Payments drives late-fee charges and refunds through the external
// gateway. Gateway transport failures never escape as errors; they come
// back as a failed PaymentOutcome so callers always get a message.
type Payments struct {
	books   BookRepository
	borrows BorrowRepository
	gateway PaymentGateway
	Now     func() time.Time
}

func NewPayments(books BookRepository, borrows BorrowRepository, gateway PaymentGateway) *Payments {
	return &Payments{books: books, borrows: borrows, gateway: gateway, Now: time.Now}
}

// PaymentOutcome is the caller-facing result of a charge or refund.
type PaymentOutcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message"`
}

// PayFees charges the patron's outstanding late fee for one book. The fee
// is recomputed at call time: against now for an open loan, against the
// frozen return date for a closed one.
func (p *Payments) PayFees(ctx context.Context, patronID string, bookID int64) (PaymentOutcome, error) {
	if !ValidPatronID(patronID) {
		return PaymentOutcome{}, ErrInvalidPatronID
	}

	records, err := p.borrows.ListByPatron(ctx, patronID)
	if err != nil {
		return PaymentOutcome{}, fmt.Errorf("list records: %w", err)
	}

	var detail fee.Detail
	found := false
	for _, rec := range records {
		if rec.BookID != bookID {
			continue
		}
		refAt := p.Now()
		if !rec.Open() {
			refAt = *rec.ReturnedAt
		}
		detail = fee.Calculate(rec.DueAt, refAt)
		found = true
		break
	}
	if !found || detail.Amount <= 0 {
		return PaymentOutcome{}, ErrNoFeesDue
	}

	book, err := p.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PaymentOutcome{}, ErrBookNotFound
		}
		return PaymentOutcome{}, fmt.Errorf("load book: %w", err)
	}

	charge, err := p.gateway.ProcessPayment(ctx, patronID, detail.Amount,
		fmt.Sprintf("Late fees for '%s'", book.Title))
	if err != nil {
		return PaymentOutcome{Message: "Payment processing error: " + err.Error()}, nil
	}
	if !charge.Approved {
		return PaymentOutcome{Message: "Payment failed: " + charge.Message}, nil
	}

	return PaymentOutcome{
		Success:       true,
		TransactionID: charge.TransactionID,
		Message:       "Payment successful! " + charge.Message,
	}, nil
}

// Refund reverses a prior late-fee charge. Malformed transaction ids and
// out-of-range amounts are rejected locally, before the gateway is called.
func (p *Payments) Refund(ctx context.Context, transactionID string, amount float64) (PaymentOutcome, error) {
	if !strings.HasPrefix(transactionID, TransactionIDPrefix) {
		return PaymentOutcome{}, ErrInvalidTransactionID
	}
	if amount <= 0 {
		return PaymentOutcome{}, ErrInvalidRefundAmount
	}
	if amount > fee.MaxPerBook {
		return PaymentOutcome{}, ErrRefundTooLarge
	}

	charge, err := p.gateway.RefundPayment(ctx, transactionID, amount)
	if err != nil {
		return PaymentOutcome{Message: "Refund processing error: " + err.Error()}, nil
	}
	if !charge.Approved {
		return PaymentOutcome{Message: "Refund failed: " + charge.Message}, nil
	}

	return PaymentOutcome{
		Success:       true,
		TransactionID: transactionID,
		Message:       charge.Message,
	}, nil
}
