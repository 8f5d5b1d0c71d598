package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/repository"
	"github.com/fixware/repairdesk/pkg/util"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)
)

// ContentService manages the editable home page copy. Invalid fields on an
// update fall back to the shipped defaults instead of rejecting the write,
// so the landing page always renders something sensible.
type ContentService struct {
	repo   repository.SiteContentRepository
	logger *zap.Logger
}

// ContentUpdateInput carries the full editable field set.
type ContentUpdateInput struct {
	HeroTitle        string
	HeroSubtitle     string
	ServicesSubtitle string
	RepairsCompleted string
	AvgTurnaround    string
	Satisfaction     string
	SupportHours     string
	ContactPhone     string
	ContactEmail     string
	ContactAddress   string
}

// NewContentService builds the service.
func NewContentService(repo repository.SiteContentRepository, logger *zap.Logger) *ContentService {
	return &ContentService{repo: repo, logger: logger}
}

// HomePage returns the stored content, or defaults when none is stored or
// the store is unavailable.
func (s *ContentService) HomePage(ctx context.Context) domain.SiteContent {
	if s.repo == nil {
		return domain.DefaultSiteContent()
	}
	content, err := s.repo.Get(ctx, domain.SiteContentID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("site content read failed", zap.Error(err))
		}
		return domain.DefaultSiteContent()
	}
	return *content
}

// UpdateHomePage validates each field and persists the result. Fields that
// fail validation are replaced with their default value; the update itself
// never fails on bad copy.
func (s *ContentService) UpdateHomePage(ctx context.Context, input ContentUpdateInput) (domain.SiteContent, error) {
	if s.repo == nil {
		return domain.SiteContent{}, util.NewStoreUnavailable()
	}

	defaults := domain.DefaultSiteContent()
	content := domain.SiteContent{
		ID:               domain.SiteContentID,
		HeroTitle:        sanitize(input.HeroTitle, defaults.HeroTitle, 100, nil),
		HeroSubtitle:     sanitize(input.HeroSubtitle, defaults.HeroSubtitle, 300, nil),
		ServicesSubtitle: sanitize(input.ServicesSubtitle, defaults.ServicesSubtitle, 200, nil),
		Trust: domain.TrustIndicators{
			RepairsCompleted: sanitize(input.RepairsCompleted, defaults.Trust.RepairsCompleted, 10, nil),
			AvgTurnaround:    sanitize(input.AvgTurnaround, defaults.Trust.AvgTurnaround, 10, nil),
			Satisfaction:     sanitize(input.Satisfaction, defaults.Trust.Satisfaction, 10, nil),
			SupportHours:     sanitize(input.SupportHours, defaults.Trust.SupportHours, 10, nil),
		},
		Contact: domain.ContactInfo{
			Phone:   sanitize(input.ContactPhone, defaults.Contact.Phone, 0, phonePattern),
			Email:   sanitize(input.ContactEmail, defaults.Contact.Email, 0, emailPattern),
			Address: sanitize(input.ContactAddress, defaults.Contact.Address, 200, nil),
		},
	}

	if err := s.repo.Upsert(ctx, &content); err != nil {
		return domain.SiteContent{}, util.MapError(err)
	}
	return content, nil
}

func sanitize(value, fallback string, maxLen int, pattern *regexp.Regexp) string {
	if value == "" {
		return fallback
	}
	if maxLen > 0 && len(value) > maxLen {
		return fallback
	}
	if pattern != nil && !pattern.MatchString(value) {
		return fallback
	}
	return value
}
