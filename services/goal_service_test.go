package services_test

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
	"mentconnect/repositories"
	"mentconnect/services"
)

func newGoalService(t *testing.T) *services.GoalService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return services.NewGoalService(repositories.NewGoalRepository(db))
}

func Test_Goal_Create_Defaults(t *testing.T) {
	req := require.New(t)
	service := newGoalService(t)

	goal, err := service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
		Title:    "Learn Go",
	})
	req.NoError(err)
	req.Equal(domain.GoalActive, goal.Status)
	req.Equal("medium", goal.Priority)
	req.Zero(goal.ProgressPercentage)
}

func Test_Goal_Create_Validation(t *testing.T) {
	req := require.New(t)
	service := newGoalService(t)

	_, err := service.Create(services.CreateGoalCommand{MenteeID: "mentee-1", MentorID: "mentor-1"})
	req.ErrorIs(err, apperrors.ErrInvalidInput)

	_, err = service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1", MentorID: "mentor-1", Title: "x", Priority: "urgent",
	})
	req.ErrorIs(err, apperrors.ErrInvalidInput)
}

func Test_Goal_Update_Progress_Status_Coupling(t *testing.T) {
	req := require.New(t)
	service := newGoalService(t)

	goal, err := service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1", MentorID: "mentor-1", Title: "Learn Go",
	})
	req.NoError(err)

	// Full progress completes the goal.
	progress := 100
	updated, err := service.Update(services.UpdateGoalCommand{
		GoalID: goal.ID, MenteeID: "mentee-1", ProgressPercentage: &progress,
	})
	req.NoError(err)
	req.Equal(domain.GoalCompleted, updated.Status)

	// Marking completed forces full progress.
	fresh, err := service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1", MentorID: "mentor-1", Title: "Ship a service",
	})
	req.NoError(err)
	updated, err = service.Update(services.UpdateGoalCommand{
		GoalID: fresh.ID, MenteeID: "mentee-1", Status: "completed",
	})
	req.NoError(err)
	req.Equal(100, updated.ProgressPercentage)
}

func Test_Goal_Update_Rejects_Bad_Progress(t *testing.T) {
	req := require.New(t)
	service := newGoalService(t)

	goal, err := service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1", MentorID: "mentor-1", Title: "Learn Go",
	})
	req.NoError(err)

	progress := 150
	_, err = service.Update(services.UpdateGoalCommand{
		GoalID: goal.ID, MenteeID: "mentee-1", ProgressPercentage: &progress,
	})
	req.ErrorIs(err, apperrors.ErrInvalidInput)
}

func Test_Goal_Tasks_Ownership(t *testing.T) {
	req := require.New(t)
	service := newGoalService(t)

	goal, err := service.Create(services.CreateGoalCommand{
		MenteeID: "mentee-1", MentorID: "mentor-1", Title: "Learn Go",
	})
	req.NoError(err)

	task, err := service.AddTask("mentee-1", goal.ID, "read the tour", nil)
	req.NoError(err)
	req.False(task.IsCompleted)

	// Another mentee cannot touch the goal's tasks.
	_, err = service.AddTask("mentee-2", goal.ID, "hijack", nil)
	req.ErrorIs(err, apperrors.ErrGoalNotFound)
	_, err = service.ListTasks("mentee-2", goal.ID)
	req.ErrorIs(err, apperrors.ErrGoalNotFound)

	req.NoError(service.SetTaskCompleted("mentee-1", goal.ID, task.ID, true))
	tasks, err := service.ListTasks("mentee-1", goal.ID)
	req.NoError(err)
	req.Len(tasks, 1)
	req.True(tasks[0].IsCompleted)

	// Unknown task id.
	err = service.SetTaskCompleted("mentee-1", goal.ID, uuid.New(), true)
	req.ErrorIs(err, apperrors.ErrGoalNotFound)
}
