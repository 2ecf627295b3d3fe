package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a weekly recurring window a mentor offers for sessions.
// DayOfWeek follows time.Weekday (0 = Sunday).
type AvailabilitySlot struct {
	ID          uuid.UUID `json:"id"`
	MentorID    string    `json:"mentor_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // "HH:MM"
	EndTime     string    `json:"end_time"`   // "HH:MM"
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
