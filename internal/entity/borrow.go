package entity

import "time"

// BorrowRecord is one loan of a book to a patron. ReturnedAt is nil while
// the loan is still open; it is set exactly once, when the book comes back.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	PatronID   string     `json:"patron_id"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"title"`
	BookAuthor string     `json:"author,omitempty"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (r BorrowRecord) Open() bool {
	return r.ReturnedAt == nil
}
