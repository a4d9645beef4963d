package service

import (
	"context"
	"time"

	"herohome/internal/metrics"
	"herohome/internal/model"
	"herohome/internal/repository"
)

// ReviewService appends reviews to services.
type ReviewService interface {
	AddReview(ctx context.Context, serviceID string, payload model.Fields) (*model.ReviewResult, error)
}

type reviewService struct {
	repo repository.ServiceRepository
}

// NewReviewService creates a review service.
func NewReviewService(repo repository.ServiceRepository) ReviewService {
	return &reviewService{repo: repo}
}

// AddReview stores the review and returns the refreshed aggregates. A missing
// or unreadable date is replaced by the current time.
func (s *reviewService) AddReview(ctx context.Context, serviceID string, payload model.Fields) (*model.ReviewResult, error) {
	oid, err := parseObjectID(serviceID)
	if err != nil {
		return nil, err
	}
	rating, err := parseRating(payload["rating"])
	if err != nil {
		return nil, err
	}

	date, ok := model.ParseTime(payload["date"])
	if !ok {
		date = time.Now().UTC()
	}

	review := model.Review{
		Rating: rating,
		Date:   date,
		Extra:  payload.Without("rating", "date"),
	}

	updated, err := s.repo.AppendReview(ctx, oid, review)
	if err != nil {
		return nil, err
	}
	metrics.ReviewsAdded.Inc()

	return &model.ReviewResult{
		Success:       true,
		Message:       "Review added successfully.",
		AverageRating: updated.AverageRating,
		ReviewCount:   updated.ReviewCount,
	}, nil
}
