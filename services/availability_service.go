package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
	"mentconnect/repositories"
)

type AddSlotCommand struct {
	MentorID  string `validate:"required"`
	DayOfWeek int    `validate:"gte=0,lte=6"`
	StartTime string `validate:"required,datetime=15:04"`
	EndTime   string `validate:"required,datetime=15:04"`
}

type AvailabilityService struct {
	slots repositories.IAvailabilityRepository
}

func NewAvailabilityService(slots repositories.IAvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{slots: slots}
}

func (s *AvailabilityService) AddSlot(cmd AddSlotCommand) (domain.AvailabilitySlot, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.AvailabilitySlot{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if cmd.EndTime <= cmd.StartTime {
		return domain.AvailabilitySlot{}, fmt.Errorf("%w: end_time must follow start_time", apperrors.ErrInvalidInput)
	}
	slot := domain.AvailabilitySlot{
		ID:          uuid.New(),
		MentorID:    cmd.MentorID,
		DayOfWeek:   cmd.DayOfWeek,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		IsAvailable: true,
	}
	if err := s.slots.SaveSlot(slot); err != nil {
		return domain.AvailabilitySlot{}, err
	}
	return slot, nil
}

func (s *AvailabilityService) SetSlotAvailable(mentorID string, slotID uuid.UUID, available bool) error {
	slots, err := s.slots.ListSlots(mentorID)
	if err != nil {
		return err
	}
	slot, found := lo.Find(slots, func(s domain.AvailabilitySlot) bool { return s.ID == slotID })
	if !found {
		return apperrors.ErrInvalidInput
	}
	slot.IsAvailable = available
	return s.slots.SaveSlot(slot)
}

func (s *AvailabilityService) RemoveSlot(mentorID string, slotID uuid.UUID) error {
	return s.slots.DeleteSlot(mentorID, slotID)
}

func (s *AvailabilityService) List(mentorID string) ([]domain.AvailabilitySlot, error) {
	return s.slots.ListSlots(mentorID)
}
