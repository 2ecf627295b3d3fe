package services

import (
	"mentconnect/domain"
	"mentconnect/repositories"
)

// Summary aggregates a user's activity by scanning rows at request time.
// Volumes stay small enough per user that precomputed rollups aren't worth
// their consistency burden.
type Summary struct {
	MessagesSent   int     `json:"messages_sent"`
	GoalsActive    int     `json:"goals_active"`
	GoalsCompleted int     `json:"goals_completed"`
	TasksCompleted int     `json:"tasks_completed"`
	AverageRating  float64 `json:"average_rating"`
}

type AnalyticsService struct {
	messages repositories.IMessageRepository
	goals    repositories.IGoalRepository
	reviews  repositories.IReviewRepository
}

func NewAnalyticsService(messages repositories.IMessageRepository,
	goals repositories.IGoalRepository,
	reviews repositories.IReviewRepository) *AnalyticsService {
	return &AnalyticsService{messages: messages, goals: goals, reviews: reviews}
}

func (s *AnalyticsService) Summarize(userID string) (Summary, error) {
	var summary Summary

	sent, err := s.messages.CountBySender(userID)
	if err != nil {
		return Summary{}, err
	}
	summary.MessagesSent = sent

	goals, err := s.goals.ListGoals(userID)
	if err != nil {
		return Summary{}, err
	}
	for _, goal := range goals {
		switch goal.Status {
		case domain.GoalActive:
			summary.GoalsActive++
		case domain.GoalCompleted:
			summary.GoalsCompleted++
		}
	}

	completed, err := s.goals.CountTasksCompleted(userID)
	if err != nil {
		return Summary{}, err
	}
	summary.TasksCompleted = completed

	reviews, err := s.reviews.ListByMentor(userID)
	if err != nil {
		return Summary{}, err
	}
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		summary.AverageRating = float64(total) / float64(len(reviews))
	}
	return summary, nil
}
