package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
	"mentconnect/repositories"
)

type ReviewService struct {
	reviews repositories.IReviewRepository
}

func NewReviewService(reviews repositories.IReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(mentorID, reviewerID string, rating int, comment string) (domain.Review, error) {
	if mentorID == "" || reviewerID == "" || rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: rating must be 1..5", apperrors.ErrInvalidInput)
	}
	review := domain.Review{
		ID:         uuid.New(),
		MentorID:   mentorID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reviews.Create(review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

func (s *ReviewService) ListByMentor(mentorID string) ([]domain.Review, error) {
	return s.reviews.ListByMentor(mentorID)
}

// AverageRating returns 0 when the mentor has no reviews yet.
func (s *ReviewService) AverageRating(mentorID string) (float64, error) {
	reviews, err := s.reviews.ListByMentor(mentorID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews)), nil
}
