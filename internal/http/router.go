package http

import (
	"context"
	"net/http"
	"time"
)

// RouterConfig carries the handlers and the readiness probe the router
// exposes.
type RouterConfig struct {
	Books    *BookHandler
	Lending  *LendingHandler
	Patrons  *PatronHandler
	Payments *PaymentHandler
	// Ready is polled by /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter registers every route on a fresh mux. Middleware is layered
// on by the caller.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := cfg.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Books.List(w, r)
		case http.MethodPost:
			cfg.Books.Add(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	router.HandleFunc("/loans", postOnly(cfg.Lending.Borrow))
	router.HandleFunc("/returns", postOnly(cfg.Lending.Return))

	router.HandleFunc("/patrons/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		cfg.Patrons.Status(w, r)
	})

	router.HandleFunc("/payments/fees", postOnly(cfg.Payments.PayFees))
	router.HandleFunc("/payments/refunds", postOnly(cfg.Payments.Refund))

	return router
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
