package service

import (
	"habesha-bites/internal/repositories"
	"habesha-bites/pkg/database"
	"habesha-bites/pkg/logger"
)

// HealthReport is the GET /health payload.
type HealthReport struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	ActiveSessions int    `json:"active_sessions"`
	TotalOrders    int    `json:"total_orders"`
	MenuItems      int    `json:"menu_items"`
}

// ServiceInfo is the GET / payload.
type ServiceInfo struct {
	Service        string            `json:"service"`
	Status         string            `json:"status"`
	Database       string            `json:"database"`
	Endpoints      map[string]string `json:"endpoints"`
	ActiveSessions int               `json:"active_sessions"`
}

type StatusServiceInterface interface {
	Health() HealthReport
	Info() ServiceInfo
}

// StatusService aggregates the observability snapshot: database reachability
// plus store counts. Counts fall back to zero when the database is down; the
// report carries the outage instead of an error.
type StatusService struct {
	db        *database.DB
	sessions  repositories.SessionRepositoryInterface
	orderRepo repositories.OrderRepositoryInterface
	menuRepo  repositories.MenuRepositoryInterface
	logger    *logger.Logger
}

func NewStatusService(
	db *database.DB,
	sessions repositories.SessionRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	log *logger.Logger,
) *StatusService {
	return &StatusService{
		db:        db,
		sessions:  sessions,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		logger:    log.WithComponent("status_service"),
	}
}

func (s *StatusService) Health() HealthReport {
	report := HealthReport{
		Status:         "healthy",
		Database:       "connected",
		ActiveSessions: s.sessions.Count(),
	}

	if err := s.db.HealthCheck(); err != nil {
		s.logger.Warn("Health check found database unreachable", "error", err)
		report.Status = "unhealthy"
		report.Database = "disconnected"
		return report
	}

	if total, err := s.orderRepo.Count(); err == nil {
		report.TotalOrders = total
	} else {
		s.logger.Warn("Failed to count orders for health report", "error", err)
	}

	if items, err := s.menuRepo.Count(); err == nil {
		report.MenuItems = items
	} else {
		s.logger.Warn("Failed to count menu items for health report", "error", err)
	}

	return report
}

func (s *StatusService) Info() ServiceInfo {
	return ServiceInfo{
		Service:  "Ethiopian Food Chatbot Webhook",
		Status:   "active",
		Database: "postgres",
		Endpoints: map[string]string{
			"webhook": "/",
			"health":  "/health",
		},
		ActiveSessions: s.sessions.Count(),
	}
}
