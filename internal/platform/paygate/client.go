// Package paygate is the HTTP client for the external payment gateway.
// It implements usecase.PaymentGateway; tests substitute a mock instead.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"libraryapi/internal/usecase"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(baseURL, apiKey string, rps int, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

type chargeRequest struct {
	PatronID    string  `json:"patron_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type refundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

type gatewayResponse struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

func (c *Client) ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (usecase.PaymentCharge, error) {
	var res gatewayResponse
	err := c.post(ctx, c.baseURL+"/v1/charges", chargeRequest{
		PatronID:    patronID,
		Amount:      amount,
		Description: description,
	}, &res)
	if err != nil {
		return usecase.PaymentCharge{}, err
	}
	return usecase.PaymentCharge{
		Approved:      res.Approved,
		TransactionID: res.TransactionID,
		Message:       res.Message,
	}, nil
}

func (c *Client) RefundPayment(ctx context.Context, transactionID string, amount float64) (usecase.PaymentCharge, error) {
	var res gatewayResponse
	err := c.post(ctx, c.baseURL+"/v1/refunds", refundRequest{
		TransactionID: transactionID,
		Amount:        amount,
	}, &res)
	if err != nil {
		return usecase.PaymentCharge{}, err
	}
	return usecase.PaymentCharge{
		Approved:      res.Approved,
		TransactionID: res.TransactionID,
		Message:       res.Message,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, body interface{}, target interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
