package filter

import (
	"strings"
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// AdminCriteria captures the back-office request list filters. Zero values
// mean "no constraint"; the Status placeholder "all" is treated the same as
// empty. Predicates compose with AND and are order-independent.
type AdminCriteria struct {
	Name     string
	Email    string
	Status   string
	DateFrom time.Time
	DateTo   time.Time
}

// ByAdminCriteria narrows the full request list by the given criteria.
func ByAdminCriteria(requests []domain.ServiceRequest, criteria AdminCriteria) []domain.ServiceRequest {
	name := strings.ToLower(strings.TrimSpace(criteria.Name))
	email := strings.ToLower(strings.TrimSpace(criteria.Email))
	status := strings.TrimSpace(criteria.Status)
	if strings.EqualFold(status, "all") {
		status = ""
	}

	out := make([]domain.ServiceRequest, 0, len(requests))
	for _, req := range requests {
		if name != "" && !strings.Contains(strings.ToLower(req.CustomerName), name) {
			continue
		}
		if email != "" && !strings.Contains(strings.ToLower(req.Email), email) {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		if !criteria.DateFrom.IsZero() && req.CreatedAt.Before(criteria.DateFrom) {
			continue
		}
		if !criteria.DateTo.IsZero() && req.CreatedAt.After(criteria.DateTo) {
			continue
		}
		out = append(out, req)
	}
	return out
}
