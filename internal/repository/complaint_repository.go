package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aeronica/complaint-portal/internal/domain"
)

type ComplaintRepository interface {
	Create(ctx context.Context, req *domain.SubmitComplaintRequest) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	// UpdateStatus performs a single conditional UPDATE; a missing id
	// reports false rather than racing an existence check against the
	// write.
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (bool, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintCols = `id, fullname, phone, complaint_type, description,
urgency, latitude, longitude, image_url, status, created_at`

func (r *complaintRepository) Create(ctx context.Context, req *domain.SubmitComplaintRequest) (*domain.Complaint, error) {
	const q = `INSERT INTO complaints (
		fullname, phone, complaint_type, description,
		urgency, latitude, longitude, image_url, status
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'pending')
	RETURNING ` + complaintCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c domain.Complaint
	err := r.pool.QueryRow(ctx, q,
		req.Fullname, req.Phone, req.ComplaintType, req.Description,
		req.Urgency, req.Latitude, req.Longitude, req.ImageURL,
	).Scan(
		&c.ID, &c.Fullname, &c.Phone, &c.ComplaintType, &c.Description,
		&c.Urgency, &c.Latitude, &c.Longitude, &c.ImageURL, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	const q = `SELECT ` + complaintCols + ` FROM complaints ORDER BY created_at DESC, id DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(
			&c.ID, &c.Fullname, &c.Phone, &c.ComplaintType, &c.Description,
			&c.Urgency, &c.Latitude, &c.Longitude, &c.ImageURL, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}

	return complaints, rows.Err()
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (bool, error) {
	const q = `UPDATE complaints SET status = $2 WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}
