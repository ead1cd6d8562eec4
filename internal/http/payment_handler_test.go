package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestPaymentHandler_PayFees(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockBooks := mocks.NewMockBookRepository(ctrl)
	mockBorrows := mocks.NewMockBorrowRepository(ctrl)
	mockGateway := mocks.NewMockPaymentGateway(ctrl)

	payments := usecase.NewPayments(mockBooks, mockBorrows, mockGateway)
	payments.Now = func() time.Time { return handlerNow }
	handler := NewPaymentHandler(payments)

	overdueRecord := entity.BorrowRecord{
		ID:         5,
		PatronID:   "123456",
		BookID:     1,
		BookTitle:  testBook.Title,
		BookAuthor: testBook.Author,
		BorrowedAt: handlerNow.AddDate(0, 0, -18),
		DueAt:      handlerNow.AddDate(0, 0, -4),
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - gateway approves",
			body: `{"patron_id":"123456","book_id":1}`,
			setupMock: func() {
				mockBorrows.EXPECT().
					ListByPatron(gomock.Any(), "123456").
					Return([]entity.BorrowRecord{overdueRecord}, nil)
				mockBooks.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(testBook, nil)
				mockGateway.EXPECT().
					ProcessPayment(gomock.Any(), "123456", 2.00, gomock.Any()).
					Return(usecase.PaymentCharge{Approved: true, TransactionID: "txn_abc123", Message: "Transaction completed."}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `Payment successful!`,
		},
		{
			name: "gateway declines",
			body: `{"patron_id":"123456","book_id":1}`,
			setupMock: func() {
				mockBorrows.EXPECT().
					ListByPatron(gomock.Any(), "123456").
					Return([]entity.BorrowRecord{overdueRecord}, nil)
				mockBooks.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(testBook, nil)
				mockGateway.EXPECT().
					ProcessPayment(gomock.Any(), "123456", 2.00, gomock.Any()).
					Return(usecase.PaymentCharge{Approved: false, Message: "Card declined."}, nil)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `Payment failed:`,
		},
		{
			name: "no fees due",
			body: `{"patron_id":"123456","book_id":1}`,
			setupMock: func() {
				onTime := overdueRecord
				onTime.DueAt = handlerNow.AddDate(0, 0, 5)
				mockBorrows.EXPECT().
					ListByPatron(gomock.Any(), "123456").
					Return([]entity.BorrowRecord{onTime}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `No late fees to pay for this book.`,
		},
		{
			name:           "malformed patron id",
			body:           `{"patron_id":"12345","book_id":1}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/payments/fees", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.PayFees(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestPaymentHandler_Refund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockBooks := mocks.NewMockBookRepository(ctrl)
	mockBorrows := mocks.NewMockBorrowRepository(ctrl)
	mockGateway := mocks.NewMockPaymentGateway(ctrl)

	payments := usecase.NewPayments(mockBooks, mockBorrows, mockGateway)
	handler := NewPaymentHandler(payments)

	tests := []struct {
		name           string
		body           string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"transaction_id":"txn_abc123","amount":2.00}`,
			setupMock: func() {
				mockGateway.EXPECT().
					RefundPayment(gomock.Any(), "txn_abc123", 2.00).
					Return(usecase.PaymentCharge{Approved: true, TransactionID: "txn_abc123", Message: "Refund issued."}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name:           "transaction id without prefix",
			body:           `{"transaction_id":"abc123","amount":2.00}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid transaction ID.`,
		},
		{
			name:           "amount above fee cap",
			body:           `{"transaction_id":"txn_abc123","amount":20.00}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Refund amount exceeds maximum late fee.`,
		},
		{
			name: "gateway rejects refund",
			body: `{"transaction_id":"txn_abc123","amount":2.00}`,
			setupMock: func() {
				mockGateway.EXPECT().
					RefundPayment(gomock.Any(), "txn_abc123", 2.00).
					Return(usecase.PaymentCharge{Approved: false, Message: "Transaction not found."}, nil)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `Refund failed:`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/payments/refunds", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.Refund(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
