package usecase

import "errors"

// ErrNotFound is the generic storage-level miss returned by repositories.
var ErrNotFound = errors.New("not found")

// Expected failures of the lending workflows. The error text is the
// message shown to the patron, so these read as sentences.
var (
	ErrInvalidPatronID    = errors.New("Invalid patron ID. Must be exactly 6 digits.")
	ErrBookNotFound       = errors.New("Book not found.")
	ErrBookUnavailable    = errors.New("This book is currently not available.")
	ErrBorrowLimitReached = errors.New("You have reached the maximum borrowing limit of 5 books.")
	ErrNoActiveLoan       = errors.New("No active borrowing record found for this book and patron.")
)

// Catalog intake validation failures, checked in this order.
var (
	ErrTitleRequired  = errors.New("Title is required.")
	ErrTitleTooLong   = errors.New("Title must be less than 200 characters.")
	ErrAuthorRequired = errors.New("Author is required.")
	ErrAuthorTooLong  = errors.New("Author must be less than 100 characters.")
	ErrInvalidISBN    = errors.New("ISBN must be exactly 13 digits.")
	ErrInvalidCopies  = errors.New("Total copies must be a positive integer.")
	ErrDuplicateISBN  = errors.New("A book with this ISBN already exists.")
)

// Payment validation failures, rejected before the gateway is called.
var (
	ErrNoFeesDue            = errors.New("No late fees to pay for this book.")
	ErrInvalidTransactionID = errors.New("Invalid transaction ID.")
	ErrInvalidRefundAmount  = errors.New("Refund amount must be greater than 0.")
	ErrRefundTooLarge       = errors.New("Refund amount exceeds maximum late fee.")
)
