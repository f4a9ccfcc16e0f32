package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFulfillmentService struct {
	lastOp        string
	lastSessionID string
	lastParams    models.Params
}

func (f *fakeFulfillmentService) record(op string, params models.Params, sessionID string) string {
	f.lastOp = op
	f.lastParams = params
	f.lastSessionID = sessionID
	return "handled " + op
}

func (f *fakeFulfillmentService) AddToOrder(params models.Params, sessionID string) string {
	return f.record("add", params, sessionID)
}

func (f *fakeFulfillmentService) RemoveFromOrder(params models.Params, sessionID string) string {
	return f.record("remove", params, sessionID)
}

func (f *fakeFulfillmentService) CompleteOrder(params models.Params, sessionID string) string {
	return f.record("complete", params, sessionID)
}

func (f *fakeFulfillmentService) TrackOrder(params models.Params, sessionID string) string {
	return f.record("track", params, sessionID)
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) (*httptest.ResponseRecorder, models.WebhookResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var resp models.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func webhookBody(intent, session string) string {
	return `{
		"responseId": "r1",
		"queryResult": {
			"queryText": "two kitfo",
			"intent": {"displayName": "` + intent + `"},
			"parameters": {"Ethiopian-food": ["Kitfo"], "number": [2]}
		},
		"session": "` + session + `"
	}`
}

func TestWebhookHandler_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		intent string
		wantOp string
	}{
		{"add", "order.add - context: ongoing-order", "add"},
		{"remove", "order.remove - context: ongoing-order", "remove"},
		{"complete", "order.complete - context: ongoing-order", "complete"},
		{"track", "track.order - context: ongoing-tracking", "track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fulfillment := &fakeFulfillmentService{}
			h := NewWebhookHandler(fulfillment, newTestLogger())

			rec, resp := postWebhook(t, h, webhookBody(tt.intent, "projects/p/agent/sessions/sess-42"))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "handled "+tt.wantOp, resp.FulfillmentText)
			assert.Equal(t, tt.wantOp, fulfillment.lastOp)
			assert.Equal(t, "sess-42", fulfillment.lastSessionID)
		})
	}
}

func TestWebhookHandler_PassesParameters(t *testing.T) {
	fulfillment := &fakeFulfillmentService{}
	h := NewWebhookHandler(fulfillment, newTestLogger())

	postWebhook(t, h, webhookBody("order.add - context: ongoing-order", "s1"))

	foods, err := fulfillment.lastParams.Strings("Ethiopian-food")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kitfo"}, foods)
}

func TestWebhookHandler_UnknownIntent(t *testing.T) {
	fulfillment := &fakeFulfillmentService{}
	h := NewWebhookHandler(fulfillment, newTestLogger())

	rec, resp := postWebhook(t, h, webhookBody("smalltalk.greeting", "s1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.FulfillmentText, "I didn't understand that intent: smalltalk.greeting.")
	assert.Empty(t, fulfillment.lastOp)
}

func TestWebhookHandler_MalformedJSON(t *testing.T) {
	fulfillment := &fakeFulfillmentService{}
	h := NewWebhookHandler(fulfillment, newTestLogger())

	rec, resp := postWebhook(t, h, `{"queryResult": `)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.FulfillmentText, "Sorry, I encountered an error:")
	assert.Empty(t, fulfillment.lastOp)
}

func TestWebhookHandler_ValidationFailure(t *testing.T) {
	fulfillment := &fakeFulfillmentService{}
	h := NewWebhookHandler(fulfillment, newTestLogger())

	// missing session and intent display name
	rec, resp := postWebhook(t, h, `{"responseId": "r1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sorry, I couldn't understand that request. Please try again.", resp.FulfillmentText)
	assert.Empty(t, fulfillment.lastOp)
}

func TestWebhookHandler_IgnoresUnknownFields(t *testing.T) {
	fulfillment := &fakeFulfillmentService{}
	h := NewWebhookHandler(fulfillment, newTestLogger())

	body := `{
		"responseId": "r1",
		"queryResult": {
			"intent": {"displayName": "order.complete - context: ongoing-order"},
			"parameters": {},
			"outputContexts": [{"name": "ongoing-order"}],
			"languageCode": "en"
		},
		"session": "s1",
		"originalDetectIntentRequest": {"source": "dialogflow"}
	}`
	rec, resp := postWebhook(t, h, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "handled complete", resp.FulfillmentText)
}
