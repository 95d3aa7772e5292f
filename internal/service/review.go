package service

import (
	"context"
	"errors"
	"math"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	equipmentRepo repository.EquipmentRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, equipmentRepo repository.EquipmentRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, equipmentRepo: equipmentRepo}
}

func (s *reviewService) SubmitReview(ctx context.Context, actor domain.Identity, equipmentID int32, rating int32, comment string) (*domain.Review, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, &domain.ValidationError{Field: "rating", Message: "Rating must be between 1 and 5."}
	}

	visible, err := s.equipmentRepo.IsVisible(ctx, actor, equipmentID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	// One review per user per item: a resubmission replaces the prior one.
	review, err := s.reviewRepo.GetByEquipmentAndUser(ctx, equipmentID, actor.UserID)
	switch {
	case err == nil:
		review.Rating = rating
		review.Comment = comment
		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		review = &domain.Review{
			EquipmentID: equipmentID,
			UserID:      actor.UserID,
			Rating:      rating,
			Comment:     comment,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.recomputeAverage(ctx, eq); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) recomputeAverage(ctx context.Context, eq *domain.Equipment) error {
	reviews, err := s.reviewRepo.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		eq.AverageRating = 0
		return s.equipmentRepo.Update(ctx, eq)
	}
	var sum int64
	for i := range reviews {
		sum += int64(reviews[i].Rating)
	}
	avg := float64(sum) / float64(len(reviews))
	eq.AverageRating = math.Round(avg*100) / 100
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *reviewService) ListReviews(ctx context.Context, viewer domain.Identity, equipmentID int32) ([]domain.Review, *domain.RatingDistribution, error) {
	visible, err := s.equipmentRepo.IsVisible(ctx, viewer, equipmentID)
	if err != nil {
		return nil, nil, err
	}
	if !visible {
		return nil, nil, domain.ErrNotFound
	}
	reviews, err := s.reviewRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, nil, err
	}
	dist := Distribution(reviews)
	return reviews, &dist, nil
}

// Distribution buckets reviews per star rating. Percentages are integer
// truncated, so they may not sum to exactly 100.
func Distribution(reviews []domain.Review) domain.RatingDistribution {
	dist := domain.RatingDistribution{
		Buckets: make(map[int32]domain.RatingBucket, 5),
		Total:   int32(len(reviews)),
	}
	counts := make(map[int32]int32, 5)
	for i := range reviews {
		counts[reviews[i].Rating]++
	}
	for star := int32(1); star <= 5; star++ {
		bucket := domain.RatingBucket{Count: counts[star]}
		if dist.Total > 0 {
			bucket.Percent = counts[star] * 100 / dist.Total
		}
		dist.Buckets[star] = bucket
	}
	return dist
}
