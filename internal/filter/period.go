package filter

import (
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// Period selects a date boundary for service history queries.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodThisMonth Period = "thisMonth"
	PeriodThisYear  Period = "thisYear"
)

// ParsePeriod maps a query value onto a Period, defaulting to all.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodThisMonth:
		return PeriodThisMonth
	case PeriodThisYear:
		return PeriodThisYear
	}
	return PeriodAll
}

// ByPeriod returns the requests whose creation time falls on or after the
// start of the period containing now. Requests with an unresolved (zero)
// creation time are excluded for every period, including all: a record whose
// timestamp could not be normalized never matches.
func ByPeriod(requests []domain.ServiceRequest, period Period, now time.Time) []domain.ServiceRequest {
	boundary := periodStart(period, now)

	out := make([]domain.ServiceRequest, 0, len(requests))
	for _, req := range requests {
		if req.CreatedAt.IsZero() {
			continue
		}
		if !boundary.IsZero() && req.CreatedAt.Before(boundary) {
			continue
		}
		out = append(out, req)
	}
	return out
}

func periodStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}
