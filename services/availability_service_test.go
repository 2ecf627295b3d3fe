package services_test

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "mentconnect/errors"
	"mentconnect/repositories"
	"mentconnect/services"
)

func newAvailabilityService(t *testing.T) *services.AvailabilityService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return services.NewAvailabilityService(repositories.NewAvailabilityRepository(db))
}

func Test_AddSlot_And_List(t *testing.T) {
	req := require.New(t)
	service := newAvailabilityService(t)

	slot, err := service.AddSlot(services.AddSlotCommand{
		MentorID: "mentor-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:30",
	})
	req.NoError(err)
	req.True(slot.IsAvailable)

	slots, err := service.List("mentor-1")
	req.NoError(err)
	req.Len(slots, 1)
}

func Test_AddSlot_Validation(t *testing.T) {
	req := require.New(t)
	service := newAvailabilityService(t)

	_, err := service.AddSlot(services.AddSlotCommand{
		MentorID: "mentor-1", DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00",
	})
	req.ErrorIs(err, apperrors.ErrInvalidInput)

	_, err = service.AddSlot(services.AddSlotCommand{
		MentorID: "mentor-1", DayOfWeek: 1, StartTime: "9am", EndTime: "10:00",
	})
	req.ErrorIs(err, apperrors.ErrInvalidInput)

	// End before start.
	_, err = service.AddSlot(services.AddSlotCommand{
		MentorID: "mentor-1", DayOfWeek: 1, StartTime: "11:00", EndTime: "10:00",
	})
	req.ErrorIs(err, apperrors.ErrInvalidInput)
}

func Test_SetSlotAvailable_And_Remove(t *testing.T) {
	req := require.New(t)
	service := newAvailabilityService(t)

	slot, err := service.AddSlot(services.AddSlotCommand{
		MentorID: "mentor-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:30",
	})
	req.NoError(err)

	req.NoError(service.SetSlotAvailable("mentor-1", slot.ID, false))
	slots, err := service.List("mentor-1")
	req.NoError(err)
	req.False(slots[0].IsAvailable)

	req.ErrorIs(service.SetSlotAvailable("mentor-1", uuid.New(), true), apperrors.ErrInvalidInput)

	req.NoError(service.RemoveSlot("mentor-1", slot.ID))
	slots, err = service.List("mentor-1")
	req.NoError(err)
	req.Empty(slots)
}
