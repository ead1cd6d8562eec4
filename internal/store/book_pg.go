package store

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 3 * time.Second

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

// BookPG is the Postgres catalog repository.
type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db, timeout: defaultQueryTimeout}
}

func (r *BookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `id, title, author, isbn, total_copies, available_copies, created_at, updated_at`

func scanBook(row pgx.Row) (entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN,
		&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BookPG) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+bookColumns+` FROM books ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookPG) Insert(ctx context.Context, b *entity.Book) error {
	const query = `
		INSERT INTO books (title, author, isbn, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Author, b.ISBN, b.TotalCopies, b.AvailableCopies,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrDuplicateISBN
		}
		return err
	}
	return nil
}
