package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixware/repairdesk/internal/domain"
)

// SiteContentRepository defines persistence access for editable page copy.
type SiteContentRepository interface {
	Get(ctx context.Context, id string) (*domain.SiteContent, error)
	Upsert(ctx context.Context, content *domain.SiteContent) error
}

type siteContentRepository struct {
	pool *pgxpool.Pool
}

// NewSiteContentRepository returns a Postgres-backed implementation.
func NewSiteContentRepository(pool *pgxpool.Pool) SiteContentRepository {
	return &siteContentRepository{pool: pool}
}

func (r *siteContentRepository) Get(ctx context.Context, id string) (*domain.SiteContent, error) {
	const query = `
        SELECT id, hero_title, hero_subtitle, services_subtitle,
               repairs_completed, avg_turnaround, satisfaction, support_hours,
               phone, email, address, updated_at
        FROM site_content WHERE id=$1`
	var content domain.SiteContent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&content.ID,
		&content.HeroTitle,
		&content.HeroSubtitle,
		&content.ServicesSubtitle,
		&content.Trust.RepairsCompleted,
		&content.Trust.AvgTurnaround,
		&content.Trust.Satisfaction,
		&content.Trust.SupportHours,
		&content.Contact.Phone,
		&content.Contact.Email,
		&content.Contact.Address,
		&content.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *siteContentRepository) Upsert(ctx context.Context, content *domain.SiteContent) error {
	const query = `
        INSERT INTO site_content (id, hero_title, hero_subtitle, services_subtitle,
            repairs_completed, avg_turnaround, satisfaction, support_hours,
            phone, email, address, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
        ON CONFLICT (id) DO UPDATE SET
            hero_title=EXCLUDED.hero_title,
            hero_subtitle=EXCLUDED.hero_subtitle,
            services_subtitle=EXCLUDED.services_subtitle,
            repairs_completed=EXCLUDED.repairs_completed,
            avg_turnaround=EXCLUDED.avg_turnaround,
            satisfaction=EXCLUDED.satisfaction,
            support_hours=EXCLUDED.support_hours,
            phone=EXCLUDED.phone,
            email=EXCLUDED.email,
            address=EXCLUDED.address,
            updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		content.ID,
		content.HeroTitle,
		content.HeroSubtitle,
		content.ServicesSubtitle,
		content.Trust.RepairsCompleted,
		content.Trust.AvgTurnaround,
		content.Trust.Satisfaction,
		content.Trust.SupportHours,
		content.Contact.Phone,
		content.Contact.Email,
		content.Contact.Address,
	).Scan(&content.UpdatedAt)
}
