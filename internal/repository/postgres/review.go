package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (equipment_id, user_id, rating, comment, date_posted)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		review.EquipmentID, review.UserID, review.Rating, review.Comment, time.Now()).Scan(&review.ID)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating=$1, comment=$2, date_posted=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, review.Rating, review.Comment, time.Now(), review.ID)
	return err
}

func (r *reviewRepository) GetByEquipmentAndUser(ctx context.Context, equipmentID, userID int32) (*domain.Review, error) {
	review := &domain.Review{}
	query := `SELECT id, equipment_id, user_id, rating, comment, date_posted FROM reviews
	          WHERE equipment_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, equipmentID, userID).Scan(
		&review.ID, &review.EquipmentID, &review.UserID, &review.Rating, &review.Comment, &review.DatePosted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Review, error) {
	query := `SELECT id, equipment_id, user_id, rating, comment, date_posted FROM reviews
	          WHERE equipment_id = $1 ORDER BY date_posted DESC`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.EquipmentID, &review.UserID, &review.Rating, &review.Comment, &review.DatePosted); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
