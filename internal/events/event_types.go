package events

import (
	"time"

	"github.com/spec-kit/meals-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestPlaced        EventType = "request_placed"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestDeleted       EventType = "request_deleted"
	EventMealCreated          EventType = "meal_created"
)

// Actor encapsulates the acting party for an event.
type Actor struct {
	UserName string      `json:"user_name"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestPlacedPayload payload.
type RequestPlacedPayload struct {
	ChefName  string `json:"chef_name"`
	MealTitle string `json:"meal_title"`
	Quantity  int    `json:"quantity"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	NewStatus domain.RequestStatus `json:"new_status"`
}

// MealCreatedPayload payload.
type MealCreatedPayload struct {
	ChefName string  `json:"chef_name"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
}
