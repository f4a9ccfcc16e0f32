package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"habesha-bites/internal/handler"
	"habesha-bites/internal/service"
	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type noopFulfillment struct{}

func (noopFulfillment) AddToOrder(models.Params, string) string      { return "ok" }
func (noopFulfillment) RemoveFromOrder(models.Params, string) string { return "ok" }
func (noopFulfillment) CompleteOrder(models.Params, string) string   { return "ok" }
func (noopFulfillment) TrackOrder(models.Params, string) string      { return "ok" }

type noopStatus struct{}

func (noopStatus) Health() service.HealthReport {
	return service.HealthReport{Status: "healthy", Database: "connected"}
}

func (noopStatus) Info() service.ServiceInfo {
	return service.ServiceInfo{Status: "active"}
}

func newTestRouter() http.Handler {
	log := logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
	return NewRouter(
		handler.NewWebhookHandler(noopFulfillment{}, log),
		handler.NewStatusHandler(noopStatus{}, log),
	)
}

func TestRouter_Routes(t *testing.T) {
	mux := newTestRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{"webhook post", http.MethodPost, "/", http.StatusOK},
		{"service info", http.MethodGet, "/", http.StatusOK},
		{"root delete rejected", http.MethodDelete, "/", http.StatusMethodNotAllowed},
		{"health get", http.MethodGet, "/health", http.StatusOK},
		{"health post rejected", http.MethodPost, "/health", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/orders", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
