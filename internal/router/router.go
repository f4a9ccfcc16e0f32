package router

import (
	"net/http"

	"habesha-bites/internal/handler"
)

// NewRouter wires the webhook and status endpoints. POST / is the fulfillment
// webhook, GET / is service info, GET /health is the health report.
func NewRouter(webhookHandler *handler.WebhookHandler, statusHandler *handler.StatusHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPost:
			webhookHandler.Handle(w, r)
		case http.MethodGet:
			statusHandler.Info(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		statusHandler.Health(w, r)
	})

	return mux
}
