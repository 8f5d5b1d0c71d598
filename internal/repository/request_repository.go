package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixware/repairdesk/internal/domain"
)

const requestColumns = `id, user_id, customer_name, email, phone, address, service_type,
               custom_service, description, urgency, preferred_date, status,
               estimated_price, estimated_completion_time, diagnosed_issue,
               created_at, updated_at`

// ServiceRequestRepository encapsulates service request persistence.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) error
	Import(ctx context.Context, req *domain.ServiceRequest) error
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
	UpdateEstimates(ctx context.Context, id string, patch domain.RequestEstimatesPatch) error
	GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	ListAll(ctx context.Context) ([]domain.ServiceRequest, error)
	ListByEmail(ctx context.Context, email string) ([]domain.ServiceRequest, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.ServiceRequest, error)
}

type serviceRequestRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRequestRepository returns a Postgres-backed implementation.
func NewServiceRequestRepository(pool *pgxpool.Pool) ServiceRequestRepository {
	return &serviceRequestRepository{pool: pool}
}

func (r *serviceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (id, user_id, customer_name, email, phone, address,
            service_type, custom_service, description, urgency, preferred_date, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.CustomerName,
		req.Email,
		req.Phone,
		req.Address,
		req.ServiceType,
		req.CustomService,
		req.Description,
		req.Urgency,
		req.PreferredDate,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

// Import inserts a record carrying its own timestamps, used when loading
// legacy exports. Zero timestamps fall back to NOW().
func (r *serviceRequestRepository) Import(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (id, user_id, customer_name, email, phone, address,
            service_type, custom_service, description, urgency, preferred_date, status,
            estimated_price, estimated_completion_time, diagnosed_issue, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
                COALESCE($16, NOW()), COALESCE($17, NOW()))`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.CustomerName,
		req.Email,
		req.Phone,
		req.Address,
		req.ServiceType,
		req.CustomService,
		req.Description,
		req.Urgency,
		req.PreferredDate,
		req.Status,
		req.EstimatedPrice,
		req.EstimatedCompletionTime,
		req.DiagnosedIssue,
		nullableTime(req.CreatedAt),
		nullableTime(req.UpdatedAt),
	)
	return err
}

func (r *serviceRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	const query = `UPDATE service_requests SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRequestRepository) UpdateEstimates(ctx context.Context, id string, patch domain.RequestEstimatesPatch) error {
	const query = `
        UPDATE service_requests SET
            estimated_price=COALESCE($1, estimated_price),
            estimated_completion_time=COALESCE($2, estimated_completion_time),
            diagnosed_issue=COALESCE($3, diagnosed_issue),
            updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		patch.EstimatedPrice,
		patch.EstimatedCompletionTime,
		patch.DiagnosedIssue,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE id=$1`
	var req domain.ServiceRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(requestScanTargets(&req)...); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepository) ListAll(ctx context.Context) ([]domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *serviceRequestRepository) ListByEmail(ctx context.Context, email string) ([]domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE LOWER(email)=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *serviceRequestRepository) ListByPhone(ctx context.Context, phone string) ([]domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE phone=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func requestScanTargets(req *domain.ServiceRequest) []any {
	return []any{
		&req.ID,
		&req.UserID,
		&req.CustomerName,
		&req.Email,
		&req.Phone,
		&req.Address,
		&req.ServiceType,
		&req.CustomService,
		&req.Description,
		&req.Urgency,
		&req.PreferredDate,
		&req.Status,
		&req.EstimatedPrice,
		&req.EstimatedCompletionTime,
		&req.DiagnosedIssue,
		&req.CreatedAt,
		&req.UpdatedAt,
	}
}

func scanRequests(rows pgx.Rows) ([]domain.ServiceRequest, error) {
	var result []domain.ServiceRequest
	for rows.Next() {
		var req domain.ServiceRequest
		if err := rows.Scan(requestScanTargets(&req)...); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
