package http

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type PaymentHandler struct {
	payments *usecase.Payments
}

func NewPaymentHandler(payments *usecase.Payments) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type payFeesReq struct {
	PatronID string `json:"patron_id" validate:"required,patron_id"`
	BookID   int64  `json:"book_id" validate:"required,gt=0"`
}

type refundReq struct {
	TransactionID string  `json:"transaction_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
}

// PayFees charges the patron's outstanding late fee for one book
// through the payment gateway. A gateway decline is reported as a
// failed outcome, not an error.
func (h *PaymentHandler) PayFees(w http.ResponseWriter, r *http.Request) {
	var req payFeesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	outcome, err := h.payments.PayFees(r.Context(), req.PatronID, req.BookID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !outcome.Success {
		httpx.JSONError(w, r, http.StatusPaymentRequired, "PAYMENT_FAILED", outcome.Message, nil)
		return
	}

	httpx.JSONSuccess(w, r, outcome)
}

// Refund reverses a prior fee payment, capped at the maximum fee a
// single book can accrue.
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req refundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	outcome, err := h.payments.Refund(r.Context(), req.TransactionID, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !outcome.Success {
		httpx.JSONError(w, r, http.StatusPaymentRequired, "REFUND_FAILED", outcome.Message, nil)
		return
	}

	httpx.JSONSuccess(w, r, outcome)
}
