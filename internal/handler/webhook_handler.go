package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"habesha-bites/internal/service"
	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// intentHandler is one fulfillment operation: parameters and session id in,
// fulfillment text out.
type intentHandler func(params models.Params, sessionID string) string

// WebhookHandler receives Dialogflow fulfillment calls and dispatches them by
// intent display name. Every outcome, including parse failures and unknown
// intents, is answered with HTTP 200 and a fulfillmentText; the platform
// treats anything else as a broken webhook.
type WebhookHandler struct {
	routes   map[string]intentHandler
	validate *validator.Validate
	logger   *logger.Logger
}

func NewWebhookHandler(fulfillment service.FulfillmentServiceInterface, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		routes: map[string]intentHandler{
			service.IntentAddToOrder:      fulfillment.AddToOrder,
			service.IntentRemoveFromOrder: fulfillment.RemoveFromOrder,
			service.IntentCompleteOrder:   fulfillment.CompleteOrder,
			service.IntentTrackOrder:      fulfillment.TrackOrder,
		},
		validate: validator.New(),
		logger:   log.WithComponent("webhook_handler"),
	}
}

// Handle handles POST / fulfillment requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req models.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode webhook payload", "error", err)
		h.writeFulfillment(w, fmt.Sprintf("Sorry, I encountered an error: %v", err))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("Webhook payload failed validation", "error", err)
		h.writeFulfillment(w, "Sorry, I couldn't understand that request. Please try again.")
		return
	}

	intent := req.QueryResult.Intent.DisplayName
	sessionID := req.SessionID()
	h.logger.Info("Handling intent",
		"intent", intent,
		"session_id", truncateSessionID(sessionID))

	route, ok := h.routes[intent]
	if !ok {
		h.logger.Warn("Unrecognized intent", "intent", intent)
		h.writeFulfillment(w, fmt.Sprintf("I didn't understand that intent: %s. Try saying 'new order' or 'track order'.", intent))
		return
	}

	text := route(req.QueryResult.Parameters, sessionID)
	h.writeFulfillment(w, text)
}

func (h *WebhookHandler) writeFulfillment(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.WebhookResponse{FulfillmentText: text}); err != nil {
		h.logger.Error("Failed to encode webhook response", "error", err)
	}
}

// truncateSessionID shortens session ids for logs; they are opaque and long.
func truncateSessionID(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8] + "..."
	}
	return sessionID
}
