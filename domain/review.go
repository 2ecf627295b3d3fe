package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a one-time rating a mentee leaves for a mentor.
type Review struct {
	ID         uuid.UUID `json:"id"`
	MentorID   string    `json:"mentor_id"`
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
