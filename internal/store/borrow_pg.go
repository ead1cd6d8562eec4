package store

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BorrowPG is the Postgres loan repository. The multi-statement workflows
// (create loan + take a copy off the shelf, close loan + put it back) run
// inside a single transaction so the availability count can never drift
// from the records under concurrent requests.
type BorrowPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBorrowPG(db *pgxpool.Pool) *BorrowPG {
	return &BorrowPG{db: db, timeout: defaultQueryTimeout}
}

func (r *BorrowPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BorrowPG) CountOpenByPatron(ctx context.Context, patronID string) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db.QueryRow(timeoutCtx,
		`SELECT COUNT(*) FROM borrow_records WHERE patron_id = $1 AND returned_at IS NULL`,
		patronID,
	).Scan(&count)
	return count, err
}

func (r *BorrowPG) ListByPatron(ctx context.Context, patronID string) ([]entity.BorrowRecord, error) {
	const query = `
		SELECT br.id, br.patron_id, br.book_id, b.title, b.author,
		       br.borrowed_at, br.due_at, br.returned_at
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		WHERE br.patron_id = $1
		ORDER BY br.borrowed_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, patronID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.BorrowRecord
	for rows.Next() {
		var rec entity.BorrowRecord
		if err := rows.Scan(&rec.ID, &rec.PatronID, &rec.BookID, &rec.BookTitle, &rec.BookAuthor,
			&rec.BorrowedAt, &rec.DueAt, &rec.ReturnedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateLoan inserts the borrow record and decrements the book's available
// count in one transaction. The guarded UPDATE keeps available_copies from
// going below zero if two borrows race for the last copy.
func (r *BorrowPG) CreateLoan(ctx context.Context, patronID string, bookID int64, borrowedAt, dueAt time.Time) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(timeoutCtx) }()

	_, err = tx.Exec(timeoutCtx, `
		INSERT INTO borrow_records (patron_id, book_id, borrowed_at, due_at)
		VALUES ($1, $2, $3, $4)`,
		patronID, bookID, borrowedAt, dueAt)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(timeoutCtx, `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE id = $1 AND available_copies > 0`,
		bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrBookUnavailable
	}

	return tx.Commit(timeoutCtx)
}

// CloseLoan stamps the unique open record for the pair, restores a copy to
// the shelf, and returns the closed record with its book title joined in.
// Returns usecase.ErrNotFound when no open record exists.
func (r *BorrowPG) CloseLoan(ctx context.Context, patronID string, bookID int64, returnedAt time.Time) (entity.BorrowRecord, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return entity.BorrowRecord{}, err
	}
	defer func() { _ = tx.Rollback(timeoutCtx) }()

	rec := entity.BorrowRecord{PatronID: patronID, BookID: bookID, ReturnedAt: &returnedAt}
	err = tx.QueryRow(timeoutCtx, `
		UPDATE borrow_records
		SET returned_at = $3
		WHERE patron_id = $1 AND book_id = $2 AND returned_at IS NULL
		RETURNING id, borrowed_at, due_at`,
		patronID, bookID, returnedAt,
	).Scan(&rec.ID, &rec.BorrowedAt, &rec.DueAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.BorrowRecord{}, usecase.ErrNotFound
		}
		return entity.BorrowRecord{}, err
	}

	_, err = tx.Exec(timeoutCtx, `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE id = $1`,
		bookID)
	if err != nil {
		return entity.BorrowRecord{}, err
	}

	err = tx.QueryRow(timeoutCtx,
		`SELECT title, author FROM books WHERE id = $1`, bookID,
	).Scan(&rec.BookTitle, &rec.BookAuthor)
	if err != nil {
		return entity.BorrowRecord{}, err
	}

	return rec, tx.Commit(timeoutCtx)
}
