package http

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type LendingHandler struct {
	lending *usecase.Lending
}

func NewLendingHandler(lending *usecase.Lending) *LendingHandler {
	return &LendingHandler{lending: lending}
}

type loanReq struct {
	PatronID string `json:"patron_id" validate:"required,patron_id"`
	BookID   int64  `json:"book_id" validate:"required,gt=0"`
}

// Borrow checks out a copy for a patron and returns the loan receipt
// with the due date.
func (h *LendingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	receipt, err := h.lending.Borrow(r.Context(), req.PatronID, req.BookID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, map[string]interface{}{
		"book":     receipt.Book,
		"due_date": receipt.DueAt.Format("2006-01-02"),
		"message":  receipt.Message,
	})
}

// Return closes the open loan for the given patron and book. The
// response carries the late fee assessed at return time, which may be
// zero.
func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	receipt, err := h.lending.Return(r.Context(), req.PatronID, req.BookID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, map[string]interface{}{
		"record":  receipt.Record,
		"fee":     receipt.Fee,
		"message": receipt.Message,
	})
}
