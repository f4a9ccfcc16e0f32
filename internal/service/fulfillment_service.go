package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"habesha-bites/internal/repositories"
	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/shopspring/decimal"
)

// Intent names as configured in the Dialogflow agent.
const (
	IntentAddToOrder      = "order.add - context: ongoing-order"
	IntentRemoveFromOrder = "order.remove - context: ongoing-order"
	IntentCompleteOrder   = "order.complete - context: ongoing-order"
	IntentTrackOrder      = "track.order - context: ongoing-tracking"
)

// Parameter names as configured in the Dialogflow agent.
const (
	paramFoodItems = "Ethiopian-food"
	paramNumber    = "number"
)

// UnknownItemPolicy controls what completion does with a cart line whose food
// name is not in the catalog.
type UnknownItemPolicy string

const (
	// PolicyDrop silently leaves the line off the bill (historic behavior).
	PolicyDrop UnknownItemPolicy = "drop"
	// PolicyReject refuses the whole completion and keeps the cart.
	PolicyReject UnknownItemPolicy = "reject"
)

// ParseUnknownItemPolicy normalizes a configured policy, defaulting to drop.
func ParseUnknownItemPolicy(s string) UnknownItemPolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(PolicyReject)) {
		return PolicyReject
	}
	return PolicyDrop
}

// statusPhrases maps stored order statuses to the phrasing read back to the
// customer. Unknown codes are echoed raw.
var statusPhrases = map[string]string{
	models.StatusInProgress:     "being prepared",
	models.StatusReady:          "ready for pickup",
	models.StatusOutForDelivery: "on its way to you",
	models.StatusDelivered:      "delivered",
	models.StatusCancelled:      "cancelled",
}

// FulfillmentServiceInterface holds the four intent operations. Each takes
// the raw intent parameters plus the conversation session id and returns the
// fulfillment text to read back; problems are always folded into the text,
// never returned as errors.
type FulfillmentServiceInterface interface {
	AddToOrder(params models.Params, sessionID string) string
	RemoveFromOrder(params models.Params, sessionID string) string
	CompleteOrder(params models.Params, sessionID string) string
	TrackOrder(params models.Params, sessionID string) string
}

type FulfillmentService struct {
	sessions  repositories.SessionRepositoryInterface
	orderRepo repositories.OrderRepositoryInterface
	menuRepo  repositories.MenuRepositoryInterface
	policy    UnknownItemPolicy
	logger    *logger.Logger
}

func NewFulfillmentService(
	sessions repositories.SessionRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	policy UnknownItemPolicy,
	log *logger.Logger,
) *FulfillmentService {
	return &FulfillmentService{
		sessions:  sessions,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		policy:    policy,
		logger:    log.WithComponent("fulfillment_service"),
	}
}

// AddToOrder merges the requested food items into the session's cart. Missing
// quantities default to one per unmatched food item; a repeated name keeps
// the later quantity before merging.
func (s *FulfillmentService) AddToOrder(params models.Params, sessionID string) string {
	foods, err := params.Strings(paramFoodItems)
	if err != nil {
		s.logger.Warn("Malformed food items parameter", "session_id", sessionID, "error", err)
		return menuGuidanceMessage
	}
	if len(foods) == 0 {
		return menuGuidanceMessage
	}

	quantities, err := params.Floats(paramNumber)
	if err != nil {
		s.logger.Warn("Malformed quantities parameter, defaulting to 1 each",
			"session_id", sessionID, "error", err)
		quantities = nil
	}
	for len(quantities) < len(foods) {
		quantities = append(quantities, 1)
	}

	candidate := models.NewCart()
	for i, food := range foods {
		candidate.Set(food, quantities[i])
	}

	cart := s.sessions.Merge(sessionID, candidate)
	s.logger.Info("Added items to cart",
		"session_id", sessionID,
		"added", candidate.Len(),
		"cart_size", cart.Len())

	return fmt.Sprintf("Added to your cart! Current order: %s. Would you like to add anything else or complete your order?",
		renderCart(cart))
}

// RemoveFromOrder deletes whole cart lines by name, case-insensitively.
func (s *FulfillmentService) RemoveFromOrder(params models.Params, sessionID string) string {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return "Your cart is empty. Say 'new order' to start ordering."
	}

	foods, err := params.Strings(paramFoodItems)
	if err != nil {
		s.logger.Warn("Malformed food items parameter", "session_id", sessionID, "error", err)
		return "Please specify which items you'd like to remove from your order."
	}
	if len(foods) == 0 {
		return "Please specify which items you'd like to remove from your order."
	}

	removed, remaining, ok := s.sessions.RemoveItems(sessionID, foods)
	if !ok {
		return "Your cart is empty. Say 'new order' to start ordering."
	}

	s.logger.Info("Removed items from cart",
		"session_id", sessionID,
		"removed", len(removed),
		"remaining", remaining.Len())

	var text string
	if len(removed) > 0 {
		text = fmt.Sprintf("Removed %s from your order.", strings.Join(removed, ", "))
	} else {
		text = "I couldn't find those items in your cart."
	}

	if remaining.IsEmpty() {
		return text + " Your cart is now empty. Say 'new order' to start over."
	}
	return fmt.Sprintf("%s Current order: %s. Anything else?", text, renderCart(remaining))
}

// CompleteOrder persists the session's cart as an order and clears the cart.
// The cart survives any persistence failure so the customer can retry.
func (s *FulfillmentService) CompleteOrder(params models.Params, sessionID string) string {
	cart, ok := s.sessions.Get(sessionID)
	if !ok || cart.IsEmpty() {
		return "Your cart is empty. Say 'new order' to start ordering delicious Ethiopian food!"
	}

	lines := make([]models.OrderLine, 0, cart.Len())
	total := decimal.Zero
	for _, item := range cart.Items() {
		food, err := s.menuRepo.GetByName(item.Name)
		if err != nil {
			if errors.Is(err, repositories.ErrFoodItemNotFound) {
				if s.policy == PolicyReject {
					s.logger.Warn("Rejecting completion, item not in catalog",
						"session_id", sessionID, "name", item.Name)
					return fmt.Sprintf("Sorry, %s is not on our menu. Please remove it from your order and try completing again.", item.Name)
				}
				s.logger.Warn("Dropping cart line, item not in catalog",
					"session_id", sessionID, "name", item.Name)
				continue
			}
			s.logger.Error("Catalog lookup failed during completion",
				"session_id", sessionID, "name", item.Name, "error", err)
			return orderFailureMessage
		}

		lineTotal := food.Price.Mul(decimal.NewFromFloat(item.Quantity))
		total = total.Add(lineTotal)
		lines = append(lines, models.OrderLine{
			ItemID:    food.ItemID,
			Quantity:  int(item.Quantity),
			LineTotal: lineTotal,
		})
	}

	order := &models.Order{Status: models.StatusInProgress, TotalPrice: total}
	orderID, err := s.orderRepo.CreateWithLines(order, lines)
	if err != nil {
		s.logger.Error("Failed to persist completed order", "session_id", sessionID, "error", err)
		return orderFailureMessage
	}

	s.sessions.Delete(sessionID)
	s.logger.Info("Order completed",
		"session_id", sessionID,
		"order_id", orderID,
		"total", total.StringFixed(2))

	return fmt.Sprintf("Perfect! Your order has been placed. Order ID: #%d. Total: %s ETB. We'll prepare your delicious Ethiopian food right away! You can track your order anytime by saying 'track order %d'.",
		orderID, total.StringFixed(2), orderID)
}

// TrackOrder reads back the status of a persisted order. Read-only.
func (s *FulfillmentService) TrackOrder(params models.Params, sessionID string) string {
	raw, present, err := params.Float(paramNumber)
	if !present {
		return "Please provide your order ID number. For example, say 'track order 63321'."
	}
	if err != nil {
		s.logger.Warn("Non-numeric order id", "session_id", sessionID, "error", err)
		return "Please provide a valid numeric order ID. For example, 'track order 63321'."
	}
	if raw != math.Trunc(raw) {
		s.logger.Warn("Fractional order id", "session_id", sessionID, "value", raw)
		return "Please provide a valid numeric order ID. For example, 'track order 63321'."
	}

	orderID := int(raw)
	status, err := s.orderRepo.GetStatus(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return fmt.Sprintf("I couldn't find order #%d in our system. Please check your order ID and try again.", orderID)
		}
		s.logger.Error("Failed to look up order status", "order_id", orderID, "error", err)
		return orderFailureMessage
	}

	return fmt.Sprintf("Your order #%d is currently %s. Thank you for choosing our Ethiopian restaurant!",
		orderID, friendlyStatus(status))
}

const menuGuidanceMessage = "Please specify which food items you'd like to order from our menu: Doro Wat, Kitfo, Beyaynetu, Shiro Wat, Tibs, Gomen, or Firfir."

const orderFailureMessage = "I'm sorry, there was an issue processing your order. Please try again or contact our support."

// renderCart joins cart lines as "<qty> <name>" with quantities shown as
// whole numbers, in the order items were first added.
func renderCart(cart *models.Cart) string {
	parts := make([]string, 0, cart.Len())
	for _, item := range cart.Items() {
		parts = append(parts, fmt.Sprintf("%d %s", int(item.Quantity), item.Name))
	}
	return strings.Join(parts, ", ")
}

func friendlyStatus(status string) string {
	if phrase, ok := statusPhrases[status]; ok {
		return phrase
	}
	return status
}
