package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	catalog *usecase.Catalog
}

func NewBookHandler(catalog *usecase.Catalog) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// List searches the catalog. With no q parameter it returns the whole
// catalog sorted by title; field picks the column to match (title, author
// or isbn, defaulting to title).
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	field := r.URL.Query().Get("field")
	if field == "" {
		field = "title"
	}

	books, err := h.catalog.Search(r.Context(), term, field)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, map[string]interface{}{
		"books": books,
		"count": len(books),
	})
}

type addBookReq struct {
	Title       string `json:"title" validate:"required,max=200"`
	Author      string `json:"author" validate:"required,max=100"`
	ISBN        string `json:"isbn" validate:"required,isbn13"`
	TotalCopies int    `json:"total_copies" validate:"required,gt=0"`
}

// Add puts a new book into the catalog with every copy available.
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book, msg, err := h.catalog.AddBook(r.Context(), req.Title, req.Author, req.ISBN, req.TotalCopies)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, map[string]interface{}{
		"book":    book,
		"message": msg,
	})
}
