package http

import (
	"errors"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

// respondError maps usecase failures onto HTTP statuses. Anything not in
// the expected-failure taxonomy is treated as a storage fault and hidden
// behind a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidPatronID),
		errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrTitleTooLong),
		errors.Is(err, usecase.ErrAuthorRequired),
		errors.Is(err, usecase.ErrAuthorTooLong),
		errors.Is(err, usecase.ErrInvalidISBN),
		errors.Is(err, usecase.ErrInvalidCopies),
		errors.Is(err, usecase.ErrInvalidTransactionID),
		errors.Is(err, usecase.ErrInvalidRefundAmount),
		errors.Is(err, usecase.ErrRefundTooLarge):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, usecase.ErrBookNotFound),
		errors.Is(err, usecase.ErrNoActiveLoan),
		errors.Is(err, usecase.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, usecase.ErrDuplicateISBN),
		errors.Is(err, usecase.ErrBookUnavailable),
		errors.Is(err, usecase.ErrBorrowLimitReached):
		httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, usecase.ErrNoFeesDue):
		httpx.JSONError(w, r, http.StatusBadRequest, "NO_FEES_DUE", err.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Database error occurred while processing the request.", nil)
	}
}
