package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
	"mentconnect/repositories"
)

type CreateGoalCommand struct {
	MenteeID    string `validate:"required"`
	MentorID    string `validate:"required"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Category    string `validate:"max=100"`
	Priority    string `validate:"omitempty,oneof=low medium high"`
	TargetDate  *time.Time
}

type UpdateGoalCommand struct {
	GoalID             uuid.UUID `validate:"required"`
	MenteeID           string    `validate:"required"`
	Status             string    `validate:"omitempty,oneof=active completed paused"`
	ProgressPercentage *int      `validate:"omitempty"`
}

type GoalService struct {
	goals repositories.IGoalRepository
}

func NewGoalService(goals repositories.IGoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

func (s *GoalService) Create(cmd CreateGoalCommand) (domain.Goal, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	goal := domain.Goal{
		ID:          uuid.New(),
		MenteeID:    cmd.MenteeID,
		MentorID:    cmd.MentorID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		Priority:    cmd.Priority,
		Status:      domain.GoalActive,
		TargetDate:  cmd.TargetDate,
	}
	if goal.Priority == "" {
		goal.Priority = "medium"
	}
	if err := s.goals.SaveGoal(goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

// Update patches status and progress. Completing a goal forces progress to
// 100; setting progress to 100 completes the goal.
func (s *GoalService) Update(cmd UpdateGoalCommand) (domain.Goal, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.Goal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	goal, err := s.goals.GetGoal(cmd.MenteeID, cmd.GoalID)
	if err != nil {
		return domain.Goal{}, err
	}
	if cmd.Status != "" {
		goal.Status = domain.GoalStatus(cmd.Status)
	}
	if cmd.ProgressPercentage != nil {
		p := *cmd.ProgressPercentage
		if p < 0 || p > 100 {
			return domain.Goal{}, fmt.Errorf("%w: progress must be 0..100", apperrors.ErrInvalidInput)
		}
		goal.ProgressPercentage = p
		if p == 100 {
			goal.Status = domain.GoalCompleted
		}
	}
	if goal.Status == domain.GoalCompleted {
		goal.ProgressPercentage = 100
	}
	if err = s.goals.SaveGoal(goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) List(menteeID string) ([]domain.Goal, error) {
	return s.goals.ListGoals(menteeID)
}

func (s *GoalService) AddTask(menteeID string, goalID uuid.UUID, title string, dueDate *time.Time) (domain.Task, error) {
	if title == "" {
		return domain.Task{}, fmt.Errorf("%w: task title required", apperrors.ErrInvalidInput)
	}
	// Ownership check before writing under the goal's prefix.
	if _, err := s.goals.GetGoal(menteeID, goalID); err != nil {
		return domain.Task{}, err
	}
	task := domain.Task{
		ID:      uuid.New(),
		GoalID:  goalID,
		Title:   title,
		DueDate: dueDate,
	}
	if err := s.goals.SaveTask(task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *GoalService) SetTaskCompleted(menteeID string, goalID, taskID uuid.UUID, completed bool) error {
	if _, err := s.goals.GetGoal(menteeID, goalID); err != nil {
		return err
	}
	tasks, err := s.goals.ListTasks(goalID)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if task.ID == taskID {
			task.IsCompleted = completed
			return s.goals.SaveTask(task)
		}
	}
	return apperrors.ErrGoalNotFound
}

func (s *GoalService) ListTasks(menteeID string, goalID uuid.UUID) ([]domain.Task, error) {
	if _, err := s.goals.GetGoal(menteeID, goalID); err != nil {
		return nil, err
	}
	return s.goals.ListTasks(goalID)
}
