package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/pkg/util"
)

// fakeRequestRepo is an in-memory ServiceRequestRepository with the same
// observable behavior as the Postgres implementation: missing rows surface
// pgx.ErrNoRows and updates bump updated_at.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]domain.ServiceRequest
	order    []string
	clock    time.Time
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[string]domain.ServiceRequest),
		clock:    time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRequestRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *domain.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	req.CreatedAt = now
	req.UpdatedAt = now
	f.requests[req.ID] = *req
	f.order = append(f.order, req.ID)
	return nil
}

func (f *fakeRequestRepo) Import(ctx context.Context, req *domain.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *req
	now := f.tick()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	f.requests[stored.ID] = stored
	f.order = append(f.order, stored.ID)
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.Status = status
	req.UpdatedAt = f.tick()
	f.requests[id] = req
	return nil
}

func (f *fakeRequestRepo) UpdateEstimates(ctx context.Context, id string, patch domain.RequestEstimatesPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.EstimatedPrice != nil {
		req.EstimatedPrice = patch.EstimatedPrice
	}
	if patch.EstimatedCompletionTime != nil {
		req.EstimatedCompletionTime = patch.EstimatedCompletionTime
	}
	if patch.DiagnosedIssue != nil {
		req.DiagnosedIssue = patch.DiagnosedIssue
	}
	req.UpdatedAt = f.tick()
	f.requests[id] = req
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &req, nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]domain.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ServiceRequest, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.requests[f.order[i]])
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByEmail(ctx context.Context, email string) ([]domain.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ServiceRequest{}
	for _, id := range f.order {
		req := f.requests[id]
		if strings.ToLower(req.Email) == email {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByPhone(ctx context.Context, phone string) ([]domain.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ServiceRequest{}
	for _, id := range f.order {
		req := f.requests[id]
		if req.Phone == phone {
			out = append(out, req)
		}
	}
	return out, nil
}

func newTestStore(t *testing.T, repo *fakeRequestRepo) *RequestStore {
	t.Helper()
	var s *RequestStore
	if repo == nil {
		s = NewRequestStore(nil, NewMemoryFeed(), nil, zap.NewNop())
	} else {
		s = NewRequestStore(repo, NewMemoryFeed(), nil, zap.NewNop())
	}
	s.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	return s
}

func validInput() AddRequestInput {
	return AddRequestInput{
		CustomerName:  "Jordan Blake",
		Email:         "jordan@example.com",
		Phone:         "555-0100",
		Address:       "12 Main St",
		ServiceType:   domain.ServiceTypeComputerRepair,
		Description:   "Laptop will not boot",
		Urgency:       domain.UrgencyHigh,
		PreferredDate: "2024-06-10",
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *util.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func TestAddRequestValidation(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*AddRequestInput)
	}{
		{"missing name", func(in *AddRequestInput) { in.CustomerName = "  " }},
		{"missing email", func(in *AddRequestInput) { in.Email = "" }},
		{"missing description", func(in *AddRequestInput) { in.Description = "" }},
		{"invalid service type", func(in *AddRequestInput) { in.ServiceType = "Exorcism" }},
		{"other without custom service", func(in *AddRequestInput) {
			in.ServiceType = domain.ServiceTypeOther
			in.CustomService = ""
		}},
		{"invalid urgency", func(in *AddRequestInput) { in.Urgency = "ASAP" }},
		{"malformed preferred date", func(in *AddRequestInput) { in.PreferredDate = "10/06/2024" }},
		{"preferred date in the past", func(in *AddRequestInput) { in.PreferredDate = "2024-05-31" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := s.AddRequest(ctx, input)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}

	// Nothing reached the repository.
	assert.Empty(t, repo.requests)
}

func TestAddRequest(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	id, err := s.AddRequest(ctx, validInput())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "SR-"), "id %q", id)

	req, err := s.GetRequestByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Equal(t, "Jordan Blake", req.CustomerName)
	assert.False(t, req.CreatedAt.IsZero())

	// The mirror picks up the write without an external refresh.
	assert.Len(t, s.ListAll(), 1)
}

func TestAddRequestDefaultsUrgency(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)

	input := validInput()
	input.Urgency = ""
	id, err := s.AddRequest(context.Background(), input)
	require.NoError(t, err)

	req, err := s.GetRequestByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, domain.UrgencyMedium, req.Urgency)
}

func TestUpdateRequestStatus(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	id, err := s.AddRequest(ctx, validInput())
	require.NoError(t, err)
	before, err := s.GetRequestByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.UpdateRequestStatus(ctx, id, domain.RequestStatusInProgress, "admin-1"))

	after, err := s.GetRequestByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, after.Status)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	// Any status may follow any other, including going backwards.
	require.NoError(t, s.UpdateRequestStatus(ctx, id, domain.RequestStatusCompleted, "admin-1"))
	require.NoError(t, s.UpdateRequestStatus(ctx, id, domain.RequestStatusPending, "admin-1"))
}

func TestUpdateRequestStatusErrors(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	err := s.UpdateRequestStatus(ctx, "SR-MISSING", "Cancelled", "admin-1")
	assertErrorCode(t, err, "VALIDATION_FAILED")

	err = s.UpdateRequestStatus(ctx, "SR-MISSING", domain.RequestStatusCompleted, "admin-1")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestUpdateRequestEstimates(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	id, err := s.AddRequest(ctx, validInput())
	require.NoError(t, err)

	err = s.UpdateRequestEstimates(ctx, id, domain.RequestEstimatesPatch{}, "admin-1")
	assertErrorCode(t, err, "VALIDATION_FAILED")

	negative := -5.0
	err = s.UpdateRequestEstimates(ctx, id, domain.RequestEstimatesPatch{EstimatedPrice: &negative}, "admin-1")
	assertErrorCode(t, err, "VALIDATION_FAILED")

	price := 149.99
	issue := "failed power supply"
	require.NoError(t, s.UpdateRequestEstimates(ctx, id, domain.RequestEstimatesPatch{
		EstimatedPrice: &price,
		DiagnosedIssue: &issue,
	}, "admin-1"))

	req, err := s.GetRequestByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, req.EstimatedPrice)
	assert.Equal(t, price, *req.EstimatedPrice)
	require.NotNil(t, req.DiagnosedIssue)
	assert.Equal(t, issue, *req.DiagnosedIssue)
	assert.Nil(t, req.EstimatedCompletionTime)

	err = s.UpdateRequestEstimates(ctx, "SR-MISSING", domain.RequestEstimatesPatch{EstimatedPrice: &price}, "admin-1")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestGetRequestsByContact(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	// Same customer, matched by email on one request and phone on the other;
	// a third request matches both and must not be returned twice.
	first := validInput()
	first.Phone = "555-9999"
	firstID, err := s.AddRequest(ctx, first)
	require.NoError(t, err)

	second := validInput()
	second.Email = "other@example.com"
	secondID, err := s.AddRequest(ctx, second)
	require.NoError(t, err)

	both := validInput()
	bothID, err := s.AddRequest(ctx, both)
	require.NoError(t, err)

	out := s.GetRequestsByContact(ctx, "Jordan@Example.com")
	found := map[string]int{}
	for _, req := range out {
		found[req.ID]++
	}
	assert.Equal(t, 1, found[firstID])
	assert.Equal(t, 1, found[bothID])
	assert.Zero(t, found[secondID])

	out = s.GetRequestsByContact(ctx, "555-0100")
	found = map[string]int{}
	for _, req := range out {
		found[req.ID]++
	}
	assert.Equal(t, 1, found[secondID])
	assert.Equal(t, 1, found[bothID])
	assert.Zero(t, found[firstID])

	assert.Empty(t, s.GetRequestsByContact(ctx, "nobody@example.com"))
	assert.Empty(t, s.GetRequestsByContact(ctx, "   "))
}

func TestGetRequestByIDFallsBackToPointLookup(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	// Insert behind the store's back so the mirror does not know the row.
	require.NoError(t, repo.Import(ctx, &domain.ServiceRequest{
		ID:          "SR-BEHIND01",
		Email:       "x@example.com",
		Description: "imported elsewhere",
		Status:      domain.RequestStatusPending,
	}))

	req, err := s.GetRequestByID(ctx, "SR-BEHIND01")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, "SR-BEHIND01", req.ID)

	req, err = s.GetRequestByID(ctx, "SR-NOPE")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestRequestStoreUnavailable(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	assert.False(t, s.Available())

	_, err := s.AddRequest(ctx, validInput())
	assertErrorCode(t, err, "STORE_UNAVAILABLE")

	err = s.UpdateRequestStatus(ctx, "SR-1", domain.RequestStatusCompleted, "admin-1")
	assertErrorCode(t, err, "STORE_UNAVAILABLE")

	price := 10.0
	err = s.UpdateRequestEstimates(ctx, "SR-1", domain.RequestEstimatesPatch{EstimatedPrice: &price}, "admin-1")
	assertErrorCode(t, err, "STORE_UNAVAILABLE")

	_, err = s.ImportLegacy(ctx, []LegacyRequestRecord{{}})
	assertErrorCode(t, err, "STORE_UNAVAILABLE")

	// Reads degrade to empty, never to an error.
	assert.Empty(t, s.ListAll())
	assert.Empty(t, s.GetRequestsByContact(ctx, "jordan@example.com"))
	assert.Empty(t, s.GetRequestsByUserID("u-1"))
	req, err := s.GetRequestByID(ctx, "SR-1")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestImportLegacy(t *testing.T) {
	repo := newFakeRequestRepo()
	s := newTestStore(t, repo)
	ctx := context.Background()

	payload := `[
		{
			"id": "legacy-1",
			"customerName": "Morgan Reyes",
			"email": "morgan@example.com",
			"phone": "555-0101",
			"serviceType": "Computer Repair",
			"description": "slow boot",
			"urgency": "Low",
			"status": "Completed",
			"createdAt": "2023-03-01T12:00:00Z",
			"updatedAt": {"seconds": 1677672000, "nanoseconds": 0}
		},
		{
			"id": "legacy-2",
			"customerName": "No Contact",
			"email": "",
			"description": "should be skipped"
		},
		{
			"id": "legacy-3",
			"email": "odd@example.com",
			"description": "unknown enums fall back to defaults",
			"serviceType": "Toaster Repair",
			"urgency": "Yesterday",
			"status": "Archived",
			"createdAt": 1704879000
		}
	]`
	var records []LegacyRequestRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))

	imported, err := s.ImportLegacy(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	first, err := s.GetRequestByID(ctx, "legacy-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, domain.RequestStatusCompleted, first.Status)
	assert.Equal(t, time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC), first.CreatedAt.UTC())
	assert.Equal(t, time.Unix(1677672000, 0).UTC(), first.UpdatedAt.UTC())

	skipped, err := s.GetRequestByID(ctx, "legacy-2")
	require.NoError(t, err)
	assert.Nil(t, skipped)

	third, err := s.GetRequestByID(ctx, "legacy-3")
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Equal(t, domain.ServiceTypeOther, third.ServiceType)
	assert.Equal(t, domain.UrgencyMedium, third.Urgency)
	assert.Equal(t, domain.RequestStatusPending, third.Status)
	assert.Equal(t, time.Unix(1704879000, 0).UTC(), third.CreatedAt.UTC())
}
