package repositories

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
)

func Test_Goal_Save_And_List(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewGoalRepository(db)
	goal := domain.Goal{
		ID:       uuid.New(),
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
		Title:    "Learn Go",
		Status:   domain.GoalActive,
	}
	req.NoError(repository.SaveGoal(goal))

	stored, err := repository.GetGoal("mentee-1", goal.ID)
	req.NoError(err)
	req.Equal(goal.Title, stored.Title)
	req.False(stored.CreatedAt.IsZero())

	// Another mentee cannot resolve the goal.
	_, err = repository.GetGoal("mentee-2", goal.ID)
	req.ErrorIs(err, apperrors.ErrGoalNotFound)

	goals, err := repository.ListGoals("mentee-1")
	req.NoError(err)
	req.Len(goals, 1)
}

func Test_Goal_Tasks_And_Completed_Count(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewGoalRepository(db)
	goal := domain.Goal{ID: uuid.New(), MenteeID: "mentee-1", MentorID: "mentor-1", Title: "Learn Go", Status: domain.GoalActive}
	req.NoError(repository.SaveGoal(goal))

	tasks := []domain.Task{
		{ID: uuid.New(), GoalID: goal.ID, Title: "read the tour", IsCompleted: true},
		{ID: uuid.New(), GoalID: goal.ID, Title: "write a server", IsCompleted: false},
		{ID: uuid.New(), GoalID: goal.ID, Title: "write tests", IsCompleted: true},
	}
	for _, task := range tasks {
		req.NoError(repository.SaveTask(task))
	}

	listed, err := repository.ListTasks(goal.ID)
	req.NoError(err)
	req.Len(listed, len(tasks))

	count, err := repository.CountTasksCompleted("mentee-1")
	req.NoError(err)
	req.Equal(2, count)
}

func Test_Audit_Append_And_ListRecent(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewAuditRepository(db)
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repository.Append(AuditEntry{
			ID:        uuid.New(),
			EventType: "message_sent",
			UserID:    "alice",
			CreatedAt: at.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := repository.ListRecent(3)
	req.NoError(err)
	req.Len(entries, 3)
	// Newest first.
	req.True(entries[0].CreatedAt.After(entries[1].CreatedAt))
	req.True(entries[1].CreatedAt.After(entries[2].CreatedAt))
}
