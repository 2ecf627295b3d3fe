package services_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain"
	"mentconnect/repositories"
	"mentconnect/services"
)

func Test_Analytics_Summarize(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	messages := repositories.NewMessageRepository(db, slog.Default(), nil)
	goals := repositories.NewGoalRepository(db)
	reviews := repositories.NewReviewRepository(db)
	service := services.NewAnalyticsService(messages, goals, reviews)

	conversationID := uuid.New()
	at := time.Now().UTC()
	req.NoError(messages.StoreMessage(domain.Message{
		ID: uuid.New(), ConversationID: conversationID, SenderID: "user-1", Content: "a", CreatedAt: at,
	}))
	req.NoError(messages.StoreMessage(domain.Message{
		ID: uuid.New(), ConversationID: conversationID, SenderID: "user-1", Content: "b", CreatedAt: at.Add(time.Second),
	}))
	req.NoError(messages.StoreMessage(domain.Message{
		ID: uuid.New(), ConversationID: conversationID, SenderID: "someone-else", Content: "c", CreatedAt: at.Add(2 * time.Second),
	}))

	active := domain.Goal{ID: uuid.New(), MenteeID: "user-1", MentorID: "m", Title: "a", Status: domain.GoalActive}
	completed := domain.Goal{ID: uuid.New(), MenteeID: "user-1", MentorID: "m", Title: "b", Status: domain.GoalCompleted}
	req.NoError(goals.SaveGoal(active))
	req.NoError(goals.SaveGoal(completed))
	req.NoError(goals.SaveTask(domain.Task{ID: uuid.New(), GoalID: active.ID, Title: "t1", IsCompleted: true}))
	req.NoError(goals.SaveTask(domain.Task{ID: uuid.New(), GoalID: active.ID, Title: "t2", IsCompleted: false}))

	req.NoError(reviews.Create(domain.Review{ID: uuid.New(), MentorID: "user-1", ReviewerID: "r", Rating: 4}))
	req.NoError(reviews.Create(domain.Review{ID: uuid.New(), MentorID: "user-1", ReviewerID: "r2", Rating: 2}))

	summary, err := service.Summarize("user-1")
	req.NoError(err)
	req.Equal(2, summary.MessagesSent)
	req.Equal(1, summary.GoalsActive)
	req.Equal(1, summary.GoalsCompleted)
	req.Equal(1, summary.TasksCompleted)
	req.InDelta(3.0, summary.AverageRating, 0.001)
}

func Test_Analytics_Empty_User(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	service := services.NewAnalyticsService(
		repositories.NewMessageRepository(db, slog.Default(), nil),
		repositories.NewGoalRepository(db),
		repositories.NewReviewRepository(db))

	summary, err := service.Summarize("ghost")
	req.NoError(err)
	req.Equal(services.Summary{}, summary)
}
