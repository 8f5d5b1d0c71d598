package dto

import (
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// ContentUpdateRequest carries the full editable home page copy.
type ContentUpdateRequest struct {
	HeroTitle        string `json:"hero_title"`
	HeroSubtitle     string `json:"hero_subtitle"`
	ServicesSubtitle string `json:"services_subtitle"`
	RepairsCompleted string `json:"repairs_completed"`
	AvgTurnaround    string `json:"avg_turnaround"`
	Satisfaction     string `json:"satisfaction"`
	SupportHours     string `json:"support_hours"`
	ContactPhone     string `json:"contact_phone"`
	ContactEmail     string `json:"contact_email"`
	ContactAddress   string `json:"contact_address"`
}

// ContentResponse is the home page copy view.
type ContentResponse struct {
	HeroTitle        string     `json:"hero_title"`
	HeroSubtitle     string     `json:"hero_subtitle"`
	ServicesSubtitle string     `json:"services_subtitle"`
	RepairsCompleted string     `json:"repairs_completed"`
	AvgTurnaround    string     `json:"avg_turnaround"`
	Satisfaction     string     `json:"satisfaction"`
	SupportHours     string     `json:"support_hours"`
	ContactPhone     string     `json:"contact_phone"`
	ContactEmail     string     `json:"contact_email"`
	ContactAddress   string     `json:"contact_address"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// NewContentResponse maps the domain record.
func NewContentResponse(content domain.SiteContent) ContentResponse {
	return ContentResponse{
		HeroTitle:        content.HeroTitle,
		HeroSubtitle:     content.HeroSubtitle,
		ServicesSubtitle: content.ServicesSubtitle,
		RepairsCompleted: content.Trust.RepairsCompleted,
		AvgTurnaround:    content.Trust.AvgTurnaround,
		Satisfaction:     content.Trust.Satisfaction,
		SupportHours:     content.Trust.SupportHours,
		ContactPhone:     content.Contact.Phone,
		ContactEmail:     content.Contact.Email,
		ContactAddress:   content.Contact.Address,
		UpdatedAt:        timePtr(content.UpdatedAt),
	}
}
