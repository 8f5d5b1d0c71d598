package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/pkg/util"
)

// LegacyRequestRecord is the JSON shape of a service request exported from
// the previous hosted backend. Field names match the old document store;
// timestamps arrive in any of the three legacy shapes and are normalized
// here, at the ingestion boundary, so nothing downstream ever sees them.
type LegacyRequestRecord struct {
	ID                      string            `json:"id"`
	UserID                  *string           `json:"userId"`
	CustomerName            string            `json:"customerName"`
	Email                   string            `json:"email"`
	Phone                   string            `json:"phone"`
	Address                 string            `json:"address"`
	ServiceType             string            `json:"serviceType"`
	CustomService           string            `json:"customService"`
	Description             string            `json:"description"`
	Urgency                 string            `json:"urgency"`
	PreferredDate           string            `json:"preferredDate"`
	Status                  string            `json:"status"`
	EstimatedPrice          *float64          `json:"estimatedPrice"`
	EstimatedCompletionTime *string           `json:"estimatedCompletionTime"`
	DiagnosedIssue          *string           `json:"diagnosedIssue"`
	CreatedAt               domain.LegacyTime `json:"createdAt"`
	UpdatedAt               domain.LegacyTime `json:"updatedAt"`
}

// ImportLegacy bulk-inserts exported records, returning the number imported.
// Records without a description or contact details are skipped rather than
// failing the batch.
func (s *RequestStore) ImportLegacy(ctx context.Context, records []LegacyRequestRecord) (int, error) {
	if s.repo == nil {
		return 0, util.NewStoreUnavailable()
	}

	imported := 0
	for _, record := range records {
		req, ok := record.toDomain()
		if !ok {
			s.logger.Warn("skipping unusable legacy record", zap.String("id", record.ID))
			continue
		}
		if err := s.repo.Import(ctx, req); err != nil {
			return imported, util.MapError(err)
		}
		imported++
	}

	if imported > 0 {
		s.notifyChanged(ctx)
	}
	return imported, nil
}

func (r LegacyRequestRecord) toDomain() (*domain.ServiceRequest, bool) {
	if strings.TrimSpace(r.Description) == "" || strings.TrimSpace(r.Email) == "" {
		return nil, false
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = newRequestID()
	}

	status := domain.RequestStatus(r.Status)
	if !domain.ValidStatus(status) {
		status = domain.RequestStatusPending
	}
	urgency := domain.Urgency(r.Urgency)
	if !domain.ValidUrgency(urgency) {
		urgency = domain.UrgencyMedium
	}
	serviceType := domain.ServiceType(r.ServiceType)
	if !domain.ValidServiceType(serviceType) {
		serviceType = domain.ServiceTypeOther
	}

	return &domain.ServiceRequest{
		ID:                      id,
		UserID:                  r.UserID,
		CustomerName:            strings.TrimSpace(r.CustomerName),
		Email:                   strings.TrimSpace(r.Email),
		Phone:                   strings.TrimSpace(r.Phone),
		Address:                 strings.TrimSpace(r.Address),
		ServiceType:             serviceType,
		CustomService:           strings.TrimSpace(r.CustomService),
		Description:             strings.TrimSpace(r.Description),
		Urgency:                 urgency,
		PreferredDate:           r.PreferredDate,
		Status:                  status,
		EstimatedPrice:          r.EstimatedPrice,
		EstimatedCompletionTime: r.EstimatedCompletionTime,
		DiagnosedIssue:          r.DiagnosedIssue,
		CreatedAt:               r.CreatedAt.Time,
		UpdatedAt:               r.UpdatedAt.Time,
	}, true
}
