package services_test

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	apperrors "mentconnect/errors"
	"mentconnect/repositories"
	"mentconnect/services"
)

func newReviewService(t *testing.T) *services.ReviewService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return services.NewReviewService(repositories.NewReviewRepository(db))
}

func Test_Review_Create_And_Average(t *testing.T) {
	req := require.New(t)
	service := newReviewService(t)

	_, err := service.Create("mentor-1", "mentee-1", 5, "excellent mentor")
	req.NoError(err)
	_, err = service.Create("mentor-1", "mentee-2", 4, "")
	req.NoError(err)

	reviews, err := service.ListByMentor("mentor-1")
	req.NoError(err)
	req.Len(reviews, 2)

	average, err := service.AverageRating("mentor-1")
	req.NoError(err)
	req.InDelta(4.5, average, 0.001)
}

func Test_Review_Rating_Bounds(t *testing.T) {
	req := require.New(t)
	service := newReviewService(t)

	_, err := service.Create("mentor-1", "mentee-1", 0, "")
	req.ErrorIs(err, apperrors.ErrInvalidInput)
	_, err = service.Create("mentor-1", "mentee-1", 6, "")
	req.ErrorIs(err, apperrors.ErrInvalidInput)
	_, err = service.Create("", "mentee-1", 3, "")
	req.ErrorIs(err, apperrors.ErrInvalidInput)
}

func Test_AverageRating_No_Reviews(t *testing.T) {
	req := require.New(t)
	service := newReviewService(t)

	average, err := service.AverageRating("mentor-1")
	req.NoError(err)
	req.Zero(average)
}
