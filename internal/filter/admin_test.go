package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fixware/repairdesk/internal/domain"
)

func adminFixtures() []domain.ServiceRequest {
	return []domain.ServiceRequest{
		{
			ID:           "SC-001",
			CustomerName: "Jordan Blake",
			Email:        "jordan@example.com",
			Status:       domain.RequestStatusPending,
			CreatedAt:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "SC-002",
			CustomerName: "Morgan Reyes",
			Email:        "morgan@example.com",
			Status:       domain.RequestStatusPending,
			CreatedAt:    time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "SC-003",
			CustomerName: "Jordan Smith",
			Email:        "jsmith@shop.example",
			Status:       domain.RequestStatusCompleted,
			CreatedAt:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestByAdminCriteriaStatus(t *testing.T) {
	out := ByAdminCriteria(adminFixtures(), AdminCriteria{Status: "Pending"})
	assert.Equal(t, []string{"SC-001", "SC-002"}, ids(out))

	out = ByAdminCriteria(adminFixtures(), AdminCriteria{Status: "Completed"})
	assert.Equal(t, []string{"SC-003"}, ids(out))
}

func TestByAdminCriteriaStatusPlaceholder(t *testing.T) {
	all := ByAdminCriteria(adminFixtures(), AdminCriteria{})
	assert.Len(t, all, 3)

	out := ByAdminCriteria(adminFixtures(), AdminCriteria{Status: "all"})
	assert.Equal(t, ids(all), ids(out))
}

func TestByAdminCriteriaNameAndEmail(t *testing.T) {
	out := ByAdminCriteria(adminFixtures(), AdminCriteria{Name: "jordan"})
	assert.Equal(t, []string{"SC-001", "SC-003"}, ids(out))

	out = ByAdminCriteria(adminFixtures(), AdminCriteria{Email: "MORGAN@"})
	assert.Equal(t, []string{"SC-002"}, ids(out))

	// Both predicates must hold at once.
	out = ByAdminCriteria(adminFixtures(), AdminCriteria{Name: "jordan", Email: "shop.example"})
	assert.Equal(t, []string{"SC-003"}, ids(out))
}

func TestByAdminCriteriaDateBounds(t *testing.T) {
	out := ByAdminCriteria(adminFixtures(), AdminCriteria{
		DateFrom: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, []string{"SC-001", "SC-002"}, ids(out))

	// Bounds are inclusive on both ends.
	out = ByAdminCriteria(adminFixtures(), AdminCriteria{
		DateFrom: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, []string{"SC-001", "SC-003"}, ids(out))
}

func TestByAdminCriteriaCombined(t *testing.T) {
	// Status plus a date floor composes with AND; the single Completed
	// request falls before the floor, so nothing matches.
	out := ByAdminCriteria(adminFixtures(), AdminCriteria{
		Status:   "Completed",
		DateFrom: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.Empty(t, out)

	out = ByAdminCriteria(adminFixtures(), AdminCriteria{
		Status:   "Pending",
		DateFrom: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, []string{"SC-002"}, ids(out))
}
