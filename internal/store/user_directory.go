package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/events"
	"github.com/fixware/repairdesk/internal/filter"
	"github.com/fixware/repairdesk/internal/repository"
	"github.com/fixware/repairdesk/pkg/util"
)

// UserDirectory mirrors all registered customer profiles, ordered by
// creation time descending, following the same snapshot-and-feed pattern as
// RequestStore. Service history lookups delegate to the request mirror.
type UserDirectory struct {
	repo       repository.UserProfileRepository
	requests   *RequestStore
	feed       ChangeFeed
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.RWMutex
	snapshot []domain.UserProfile

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// NewUserDirectory constructs a directory instance. Pass a nil repository
// to run in unavailable mode.
func NewUserDirectory(repo repository.UserProfileRepository, requests *RequestStore, feed ChangeFeed, dispatcher events.Dispatcher, logger *zap.Logger) *UserDirectory {
	return &UserDirectory{
		repo:       repo,
		requests:   requests,
		feed:       feed,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Available reports whether the backing store is configured.
func (d *UserDirectory) Available() bool {
	return d.repo != nil
}

// Start loads the initial snapshot and begins listening on the change feed.
func (d *UserDirectory) Start(ctx context.Context) error {
	if d.repo == nil {
		d.logger.Warn("user directory unavailable; serving empty snapshot")
		close(d.done)
		return nil
	}
	if err := d.Refresh(ctx); err != nil {
		return err
	}

	ch, cancel, err := d.feed.Subscribe(ctx, TopicUsersChanged)
	if err != nil {
		d.logger.Warn("user change feed unavailable; mirror refreshes on local writes only", zap.Error(err))
		close(d.done)
		return nil
	}

	go func() {
		defer close(d.done)
		defer cancel()
		for {
			select {
			case <-d.stopCh:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				if err := d.Refresh(context.Background()); err != nil {
					d.logger.Warn("user snapshot refresh failed", zap.Error(err))
				}
			}
		}
	}()
	return nil
}

// Stop tears down the feed subscription.
func (d *UserDirectory) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
	<-d.done
}

// Refresh replaces the mirror with a fresh repository snapshot.
func (d *UserDirectory) Refresh(ctx context.Context) error {
	if d.repo == nil {
		return nil
	}
	profiles, err := d.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.snapshot = profiles
	d.mu.Unlock()
	return nil
}

// CreateProfile persists a new customer profile (called from registration).
func (d *UserDirectory) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	if d.repo == nil {
		return util.NewStoreUnavailable()
	}
	if err := d.repo.Create(ctx, profile); err != nil {
		return util.MapError(err)
	}
	d.notifyChanged(ctx)
	return nil
}

// UpdateUserProfile merges the patch into the stored profile.
func (d *UserDirectory) UpdateUserProfile(ctx context.Context, uid string, patch domain.UserProfilePatch) error {
	if patch.Empty() {
		return util.NewValidationError("no profile fields provided", nil)
	}
	if d.repo == nil {
		return util.NewStoreUnavailable()
	}

	profile, err := d.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("user profile", map[string]any{"uid": uid})
		}
		return util.MapError(err)
	}

	patch.Apply(profile)
	if err := d.repo.Update(ctx, profile); err != nil {
		return util.MapError(err)
	}

	d.notifyChanged(ctx)
	d.publishEvent(ctx, events.Event{
		Type:   events.EventUserProfileUpdated,
		UserID: uid,
		Actor:  events.Actor{Type: domain.SubjectTypeCustomer, CustomerID: &uid},
		Payload: events.UserProfileUpdatedPayload{
			Fields: patchedFields(patch),
		},
	})
	return nil
}

// DeleteUser hard-removes the profile record. The identity account and any
// service requests referencing the uid are deliberately left in place.
func (d *UserDirectory) DeleteUser(ctx context.Context, uid string, adminID string) error {
	if d.repo == nil {
		return util.NewStoreUnavailable()
	}

	profile, err := d.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("user profile", map[string]any{"uid": uid})
		}
		return util.MapError(err)
	}

	if err := d.repo.Delete(ctx, uid); err != nil {
		return util.MapError(err)
	}

	d.notifyChanged(ctx)
	d.publishEvent(ctx, events.Event{
		Type:    events.EventUserDeleted,
		UserID:  uid,
		Actor:   adminActor(adminID),
		Payload: events.UserDeletedPayload{Email: profile.Email},
	})
	return nil
}

// GetUserByID checks the mirror first, then falls back to one repository
// point lookup. A miss yields nil.
func (d *UserDirectory) GetUserByID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	d.mu.RLock()
	for i := range d.snapshot {
		if d.snapshot[i].UID == uid {
			profile := d.snapshot[i]
			d.mu.RUnlock()
			return &profile, nil
		}
	}
	d.mu.RUnlock()

	if d.repo == nil {
		return nil, nil
	}
	profile, err := d.repo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			d.logger.Warn("profile point lookup failed", zap.String("uid", uid), zap.Error(err))
		}
		return nil, nil
	}
	return profile, nil
}

// ListAll returns a copy of the current snapshot.
func (d *UserDirectory) ListAll() []domain.UserProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.UserProfile, len(d.snapshot))
	copy(out, d.snapshot)
	return out
}

// GetUserServiceHistory returns all requests referencing the uid, including
// for deleted profiles: history outlives the profile record.
func (d *UserDirectory) GetUserServiceHistory(uid string) []domain.ServiceRequest {
	return d.requests.GetRequestsByUserID(uid)
}

// GetUserServiceHistoryByPeriod narrows the history to the given period.
func (d *UserDirectory) GetUserServiceHistoryByPeriod(uid string, period filter.Period) []domain.ServiceRequest {
	return filter.ByPeriod(d.requests.GetRequestsByUserID(uid), period, d.now())
}

func (d *UserDirectory) notifyChanged(ctx context.Context) {
	if err := d.feed.Publish(ctx, TopicUsersChanged); err != nil {
		d.logger.Warn("user change publish failed", zap.Error(err))
	}
	if err := d.Refresh(ctx); err != nil {
		d.logger.Warn("user snapshot refresh failed", zap.Error(err))
	}
}

func (d *UserDirectory) publishEvent(ctx context.Context, event events.Event) {
	if d.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = d.now()
	}
	_ = d.dispatcher.Publish(ctx, event)
}

func patchedFields(patch domain.UserProfilePatch) []string {
	fields := []string{}
	if patch.Name != nil {
		fields = append(fields, "name")
	}
	if patch.Email != nil {
		fields = append(fields, "email")
	}
	if patch.Phone != nil {
		fields = append(fields, "phone")
	}
	if patch.Street != nil {
		fields = append(fields, "street")
	}
	if patch.City != nil {
		fields = append(fields, "city")
	}
	if patch.State != nil {
		fields = append(fields, "state")
	}
	if patch.ZipCode != nil {
		fields = append(fields, "zip_code")
	}
	return fields
}
