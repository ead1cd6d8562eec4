package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/entity"
)

// TestBook is a catalog fixture with every copy on the shelf.
var TestBook = entity.Book{
	ID:              1,
	Title:           "The Great Gatsby",
	Author:          "F. Scott Fitzgerald",
	ISBN:            "9780743273565",
	TotalCopies:     3,
	AvailableCopies: 3,
	CreatedAt:       time.Now(),
	UpdatedAt:       time.Now(),
}

// OpenRecord returns an open loan fixture due in dueInDays days (negative
// for overdue) relative to now.
func OpenRecord(now time.Time, dueInDays int) entity.BorrowRecord {
	return entity.BorrowRecord{
		ID:         1,
		PatronID:   "123456",
		BookID:     TestBook.ID,
		BookTitle:  TestBook.Title,
		BookAuthor: TestBook.Author,
		BorrowedAt: now.AddDate(0, 0, dueInDays-14),
		DueAt:      now.AddDate(0, 0, dueInDays),
	}
}

// ClosedRecord returns a returned loan fixture that came back
// returnedLateDays after its due date (zero or negative for on time).
func ClosedRecord(now time.Time, returnedLateDays int) entity.BorrowRecord {
	rec := OpenRecord(now, -returnedLateDays)
	returnedAt := rec.DueAt.AddDate(0, 0, returnedLateDays)
	rec.ReturnedAt = &returnedAt
	return rec
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
