package domain

import (
	"time"

	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// Goal tracks a mentee objective agreed with a mentor.
type Goal struct {
	ID                 uuid.UUID  `json:"id"`
	MenteeID           string     `json:"user_id"`
	MentorID           string     `json:"mentor_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Priority           string     `json:"priority"`
	Status             GoalStatus `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	TargetDate         *time.Time `json:"target_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Task is a concrete step under a goal.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	GoalID      uuid.UUID  `json:"goal_id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
