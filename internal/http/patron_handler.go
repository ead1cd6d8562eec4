package http

import (
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type PatronHandler struct {
	report *usecase.Report
}

func NewPatronHandler(report *usecase.Report) *PatronHandler {
	return &PatronHandler{report: report}
}

// Status serves GET /patrons/{patron_id}: open loans with accruing
// fees, closed loans with their frozen fees, and the totals.
func (h *PatronHandler) Status(w http.ResponseWriter, r *http.Request) {
	patronID := strings.TrimPrefix(r.URL.Path, "/patrons/")
	if patronID == "" || strings.Contains(patronID, "/") {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
		return
	}

	report, err := h.report.Status(r.Context(), patronID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, report)
}
