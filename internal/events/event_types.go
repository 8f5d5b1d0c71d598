package events

import (
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestEstimatesSet  EventType = "request_estimates_set"
	EventUserProfileUpdated   EventType = "user_profile_updated"
	EventUserDeleted          EventType = "user_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type       domain.SubjectType `json:"type"`
	CustomerID *string            `json:"customer_id,omitempty"`
	AdminID    *string            `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by the stores and services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	ServiceType  domain.ServiceType `json:"service_type"`
	Urgency      domain.Urgency     `json:"urgency"`
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// RequestEstimatesSetPayload payload.
type RequestEstimatesSetPayload struct {
	EstimatedPrice          *float64 `json:"estimated_price,omitempty"`
	EstimatedCompletionTime *string  `json:"estimated_completion_time,omitempty"`
	DiagnosedIssue          *string  `json:"diagnosed_issue,omitempty"`
}

// UserProfileUpdatedPayload payload.
type UserProfileUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Email string `json:"email"`
}
