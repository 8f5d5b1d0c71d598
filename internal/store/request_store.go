package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/events"
	"github.com/fixware/repairdesk/internal/repository"
	"github.com/fixware/repairdesk/pkg/util"
)

// RequestStore is the authoritative in-process view of all service
// requests, ordered by creation time descending. Writes go through the
// repository and the mirror is refreshed by whole-snapshot reloads, either
// locally after a write or when the change feed signals a write elsewhere.
//
// A store constructed without a repository (no DSN configured) is
// "unavailable": writes fail with STORE_UNAVAILABLE and reads come back
// empty.
type RequestStore struct {
	repo       repository.ServiceRequestRepository
	feed       ChangeFeed
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.RWMutex
	snapshot []domain.ServiceRequest

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// AddRequestInput describes a new intake form submission.
type AddRequestInput struct {
	UserID        *string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	ServiceType   domain.ServiceType
	CustomService string
	Description   string
	Urgency       domain.Urgency
	PreferredDate string
}

// NewRequestStore constructs a store instance. Pass a nil repository to run
// in unavailable mode.
func NewRequestStore(repo repository.ServiceRequestRepository, feed ChangeFeed, dispatcher events.Dispatcher, logger *zap.Logger) *RequestStore {
	return &RequestStore{
		repo:       repo,
		feed:       feed,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Available reports whether the backing store is configured.
func (s *RequestStore) Available() bool {
	return s.repo != nil
}

// Start loads the initial snapshot and begins listening on the change feed.
func (s *RequestStore) Start(ctx context.Context) error {
	if s.repo == nil {
		s.logger.Warn("request store unavailable; serving empty snapshot")
		close(s.done)
		return nil
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	ch, cancel, err := s.feed.Subscribe(ctx, TopicRequestsChanged)
	if err != nil {
		s.logger.Warn("request change feed unavailable; mirror refreshes on local writes only", zap.Error(err))
		close(s.done)
		return nil
	}

	go func() {
		defer close(s.done)
		defer cancel()
		for {
			select {
			case <-s.stopCh:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				if err := s.Refresh(context.Background()); err != nil {
					s.logger.Warn("request snapshot refresh failed", zap.Error(err))
				}
			}
		}
	}()
	return nil
}

// Stop tears down the feed subscription.
func (s *RequestStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.done
}

// Refresh replaces the mirror with a fresh repository snapshot.
func (s *RequestStore) Refresh(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = requests
	s.mu.Unlock()
	return nil
}

// AddRequest validates and persists a new service request, returning its id.
// The request starts in Pending status.
func (s *RequestStore) AddRequest(ctx context.Context, input AddRequestInput) (string, error) {
	if err := validateAddRequest(&input, s.now()); err != nil {
		return "", err
	}
	if s.repo == nil {
		return "", util.NewStoreUnavailable()
	}

	req := &domain.ServiceRequest{
		ID:            newRequestID(),
		UserID:        input.UserID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		Address:       strings.TrimSpace(input.Address),
		ServiceType:   input.ServiceType,
		CustomService: strings.TrimSpace(input.CustomService),
		Description:   strings.TrimSpace(input.Description),
		Urgency:       input.Urgency,
		PreferredDate: input.PreferredDate,
		Status:        domain.RequestStatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return "", util.MapError(err)
	}

	s.notifyChanged(ctx)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Actor:     actorForRequest(input.UserID),
		Payload: events.RequestCreatedPayload{
			ServiceType:  req.ServiceType,
			Urgency:      req.Urgency,
			CustomerName: req.CustomerName,
			Email:        req.Email,
		},
	})
	return req.ID, nil
}

// UpdateRequestStatus sets a new status. Membership in the status enum is
// checked; the transition itself is not, any status may follow any other.
func (s *RequestStore) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, adminID string) error {
	if !domain.ValidStatus(status) {
		return util.NewValidationError("invalid status", map[string]any{"status": status})
	}
	if s.repo == nil {
		return util.NewStoreUnavailable()
	}

	previous, _ := s.GetRequestByID(ctx, id)

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("service request", map[string]any{"id": id})
		}
		return util.MapError(err)
	}

	s.notifyChanged(ctx)
	oldStatus := domain.RequestStatus("")
	if previous != nil {
		oldStatus = previous.Status
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: id,
		Actor:     adminActor(adminID),
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return nil
}

// UpdateRequestEstimates applies the post-intake fields.
func (s *RequestStore) UpdateRequestEstimates(ctx context.Context, id string, patch domain.RequestEstimatesPatch, adminID string) error {
	if patch.Empty() {
		return util.NewValidationError("no estimate fields provided", nil)
	}
	if patch.EstimatedPrice != nil && *patch.EstimatedPrice < 0 {
		return util.NewValidationError("estimated price must be non-negative", map[string]any{"estimated_price": *patch.EstimatedPrice})
	}
	if s.repo == nil {
		return util.NewStoreUnavailable()
	}

	if err := s.repo.UpdateEstimates(ctx, id, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("service request", map[string]any{"id": id})
		}
		return util.MapError(err)
	}

	s.notifyChanged(ctx)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestEstimatesSet,
		RequestID: id,
		Actor:     adminActor(adminID),
		Payload: events.RequestEstimatesSetPayload{
			EstimatedPrice:          patch.EstimatedPrice,
			EstimatedCompletionTime: patch.EstimatedCompletionTime,
			DiagnosedIssue:          patch.DiagnosedIssue,
		},
	})
	return nil
}

// GetRequestsByContact looks up requests by exact email (case-insensitive)
// and exact phone (verbatim) match, concatenated with duplicates collapsed
// by id. Any lookup failure yields an empty list, never an error.
func (s *RequestStore) GetRequestsByContact(ctx context.Context, contact string) []domain.ServiceRequest {
	contact = strings.TrimSpace(contact)
	if contact == "" || s.repo == nil {
		return []domain.ServiceRequest{}
	}

	byEmail, err := s.repo.ListByEmail(ctx, strings.ToLower(contact))
	if err != nil {
		s.logger.Warn("contact lookup by email failed", zap.Error(err))
		byEmail = nil
	}
	byPhone, err := s.repo.ListByPhone(ctx, contact)
	if err != nil {
		s.logger.Warn("contact lookup by phone failed", zap.Error(err))
		byPhone = nil
	}

	seen := make(map[string]struct{}, len(byEmail))
	out := make([]domain.ServiceRequest, 0, len(byEmail)+len(byPhone))
	for _, req := range byEmail {
		seen[req.ID] = struct{}{}
		out = append(out, req)
	}
	for _, req := range byPhone {
		if _, dup := seen[req.ID]; dup {
			continue
		}
		out = append(out, req)
	}
	return out
}

// GetRequestsByUserID filters the mirror synchronously.
func (s *RequestStore) GetRequestsByUserID(userID string) []domain.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ServiceRequest, 0)
	for _, req := range s.snapshot {
		if req.UserID != nil && *req.UserID == userID {
			out = append(out, req)
		}
	}
	return out
}

// GetRequestByID checks the mirror first, then falls back to one repository
// point lookup. A miss or lookup failure yields nil.
func (s *RequestStore) GetRequestByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	s.mu.RLock()
	for i := range s.snapshot {
		if s.snapshot[i].ID == id {
			req := s.snapshot[i]
			s.mu.RUnlock()
			return &req, nil
		}
	}
	s.mu.RUnlock()

	if s.repo == nil {
		return nil, nil
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("request point lookup failed", zap.String("id", id), zap.Error(err))
		}
		return nil, nil
	}
	return req, nil
}

// ListAll returns a copy of the current snapshot.
func (s *RequestStore) ListAll() []domain.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ServiceRequest, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *RequestStore) notifyChanged(ctx context.Context) {
	if err := s.feed.Publish(ctx, TopicRequestsChanged); err != nil {
		s.logger.Warn("request change publish failed", zap.Error(err))
	}
	// Keep the local mirror correct even when the feed is down.
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("request snapshot refresh failed", zap.Error(err))
	}
}

func (s *RequestStore) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateAddRequest(input *AddRequestInput, now time.Time) error {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"customer_name": input.CustomerName,
		"email":         input.Email,
		"phone":         input.Phone,
		"address":       input.Address,
		"description":   input.Description,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return util.NewValidationError("missing required fields", missing)
	}
	if !domain.ValidServiceType(input.ServiceType) {
		return util.NewValidationError("invalid service type", map[string]any{"service_type": input.ServiceType})
	}
	if input.ServiceType == domain.ServiceTypeOther && strings.TrimSpace(input.CustomService) == "" {
		return util.NewValidationError("custom service description required", nil)
	}
	if input.Urgency == "" {
		input.Urgency = domain.UrgencyMedium
	}
	if !domain.ValidUrgency(input.Urgency) {
		return util.NewValidationError("invalid urgency", map[string]any{"urgency": input.Urgency})
	}
	if input.PreferredDate != "" {
		preferred, err := time.Parse("2006-01-02", input.PreferredDate)
		if err != nil {
			return util.NewValidationError("invalid preferred date", map[string]any{"preferred_date": input.PreferredDate})
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if preferred.Before(today) {
			return util.NewValidationError("preferred date cannot be in the past", map[string]any{"preferred_date": input.PreferredDate})
		}
	}
	return nil
}

func newRequestID() string {
	return "SR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func actorForRequest(userID *string) events.Actor {
	if userID == nil {
		return events.Actor{Type: domain.SubjectTypeCustomer}
	}
	return events.Actor{Type: domain.SubjectTypeCustomer, CustomerID: userID}
}

func adminActor(adminID string) events.Actor {
	if adminID == "" {
		return events.Actor{Type: domain.SubjectTypeAdmin}
	}
	return events.Actor{Type: domain.SubjectTypeAdmin, AdminID: &adminID}
}
