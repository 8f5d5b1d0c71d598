package dto

import (
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// CreateRequestRequest is the intake form payload.
type CreateRequestRequest struct {
	CustomerName  string `json:"customer_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ServiceType   string `json:"service_type"`
	CustomService string `json:"custom_service"`
	Description   string `json:"description"`
	Urgency       string `json:"urgency"`
	PreferredDate string `json:"preferred_date"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateEstimatesRequest payload. Absent fields are left untouched.
type UpdateEstimatesRequest struct {
	EstimatedPrice          *float64 `json:"estimated_price"`
	EstimatedCompletionTime *string  `json:"estimated_completion_time"`
	DiagnosedIssue          *string  `json:"diagnosed_issue"`
}

// ServiceRequestResponse is the full request view.
type ServiceRequestResponse struct {
	ID                      string     `json:"id"`
	UserID                  *string    `json:"user_id,omitempty"`
	CustomerName            string     `json:"customer_name"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Address                 string     `json:"address"`
	ServiceType             string     `json:"service_type"`
	CustomService           string     `json:"custom_service,omitempty"`
	Description             string     `json:"description"`
	Urgency                 string     `json:"urgency"`
	PreferredDate           string     `json:"preferred_date,omitempty"`
	Status                  string     `json:"status"`
	EstimatedPrice          *float64   `json:"estimated_price,omitempty"`
	EstimatedCompletionTime *string    `json:"estimated_completion_time,omitempty"`
	DiagnosedIssue          *string    `json:"diagnosed_issue,omitempty"`
	CreatedAt               *time.Time `json:"created_at,omitempty"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

// NewServiceRequestResponse maps the domain record.
func NewServiceRequestResponse(req domain.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:                      req.ID,
		UserID:                  req.UserID,
		CustomerName:            req.CustomerName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Address:                 req.Address,
		ServiceType:             string(req.ServiceType),
		CustomService:           req.CustomService,
		Description:             req.Description,
		Urgency:                 string(req.Urgency),
		PreferredDate:           req.PreferredDate,
		Status:                  string(req.Status),
		EstimatedPrice:          req.EstimatedPrice,
		EstimatedCompletionTime: req.EstimatedCompletionTime,
		DiagnosedIssue:          req.DiagnosedIssue,
		CreatedAt:               timePtr(req.CreatedAt),
		UpdatedAt:               timePtr(req.UpdatedAt),
	}
}

// NewServiceRequestList maps a slice of domain records.
func NewServiceRequestList(requests []domain.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, NewServiceRequestResponse(req))
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
