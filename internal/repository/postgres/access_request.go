package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type accessRequestRepository struct {
	db *sql.DB
}

func NewAccessRequestRepository(db *sql.DB) repository.AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

const accessRequestColumns = `id, collection_id, user_id, status, request_date, response_date, response_note`

func scanAccessRequest(row interface{ Scan(...any) error }) (*domain.CollectionAccessRequest, error) {
	req := &domain.CollectionAccessRequest{}
	var note sql.NullString
	err := row.Scan(&req.ID, &req.CollectionID, &req.UserID, &req.Status, &req.RequestDate, &req.ResponseDate, &note)
	if err != nil {
		return nil, err
	}
	req.ResponseNote = note.String
	return req, nil
}

func (r *accessRequestRepository) Create(ctx context.Context, req *domain.CollectionAccessRequest) error {
	query := `INSERT INTO collection_access_requests (collection_id, user_id, status, request_date, response_date, response_note)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.CollectionID, req.UserID, req.Status, time.Now(), req.ResponseDate, nullString(req.ResponseNote)).Scan(&req.ID)
}

func (r *accessRequestRepository) GetByID(ctx context.Context, id int32) (*domain.CollectionAccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM collection_access_requests WHERE id = $1`
	req, err := scanAccessRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *accessRequestRepository) GetByCollectionAndUser(ctx context.Context, collectionID, userID int32) (*domain.CollectionAccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM collection_access_requests WHERE collection_id = $1 AND user_id = $2`
	req, err := scanAccessRequest(r.db.QueryRowContext(ctx, query, collectionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *accessRequestRepository) Update(ctx context.Context, req *domain.CollectionAccessRequest) error {
	query := `UPDATE collection_access_requests SET status=$1, request_date=$2, response_date=$3, response_note=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, req.Status, req.RequestDate, req.ResponseDate, nullString(req.ResponseNote), req.ID)
	return err
}

func (r *accessRequestRepository) ListPendingForCreator(ctx context.Context, creatorID int32) ([]domain.CollectionAccessRequest, error) {
	query := `SELECT r.id, r.collection_id, r.user_id, r.status, r.request_date, r.response_date, r.response_note
	          FROM collection_access_requests r
	          JOIN collections c ON c.id = r.collection_id
	          WHERE c.creator_id = $1 AND r.status = 'PENDING'
	          ORDER BY r.request_date`
	return r.queryRequests(ctx, query, creatorID)
}

func (r *accessRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.CollectionAccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM collection_access_requests WHERE user_id = $1 ORDER BY request_date DESC`
	return r.queryRequests(ctx, query, userID)
}

func (r *accessRequestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]domain.CollectionAccessRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.CollectionAccessRequest
	for rows.Next() {
		req, err := scanAccessRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
