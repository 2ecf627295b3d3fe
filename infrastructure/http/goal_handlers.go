package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentconnect/auth"
	apperrors "mentconnect/errors"
	"mentconnect/services"
)

type createGoalRequest struct {
	MentorID    string     `json:"mentor_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	TargetDate  *time.Time `json:"target_date"`
}

type updateGoalRequest struct {
	Status             string `json:"status"`
	ProgressPercentage *int   `json:"progress_percentage"`
}

type addTaskRequest struct {
	Title   string     `json:"title" binding:"required"`
	DueDate *time.Time `json:"due_date"`
}

type setTaskCompletedRequest struct {
	Completed bool `json:"is_completed"`
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.goals.List(auth.CurrentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (s *Server) createGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	goal, err := s.goals.Create(services.CreateGoalCommand{
		MenteeID:    auth.CurrentUserID(c),
		MentorID:    req.MentorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) updateGoal(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var req updateGoalRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	goal, err := s.goals.Update(services.UpdateGoalCommand{
		GoalID:             goalID,
		MenteeID:           auth.CurrentUserID(c),
		Status:             req.Status,
		ProgressPercentage: req.ProgressPercentage,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) listTasks(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	tasks, err := s.goals.ListTasks(auth.CurrentUserID(c), goalID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) addTask(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var req addTaskRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	task, err := s.goals.AddTask(auth.CurrentUserID(c), goalID, req.Title, req.DueDate)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) setTaskCompleted(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	taskID, err := uuid.Parse(c.Param("taskID"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var req setTaskCompletedRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	if err = s.goals.SetTaskCompleted(auth.CurrentUserID(c), goalID, taskID, req.Completed); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
