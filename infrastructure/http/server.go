// Package http exposes the JSON API and the WebSocket feed endpoint.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentconnect/auth"
	apperrors "mentconnect/errors"
	"mentconnect/internal"
	"mentconnect/observability"
	"mentconnect/services"
	"mentconnect/storage"
)

type Server struct {
	log           *slog.Logger
	conversations services.IConversationService
	profiles      *services.ProfileService
	goals         *services.GoalService
	availability  *services.AvailabilityService
	reviews       *services.ReviewService
	analytics     *services.AnalyticsService
	attachments   *storage.AttachmentStore
	tokens        auth.TokenManager
	limiter       *internal.RateLimiter
	monitor       *observability.Monitor

	connectionBufferSize int
}

func NewServer(log *slog.Logger,
	conversations services.IConversationService,
	profiles *services.ProfileService,
	goals *services.GoalService,
	availability *services.AvailabilityService,
	reviews *services.ReviewService,
	analytics *services.AnalyticsService,
	attachments *storage.AttachmentStore,
	tokens auth.TokenManager,
	limiter *internal.RateLimiter,
	monitor *observability.Monitor,
	connectionBufferSize int) *Server {
	return &Server{
		log:                  log,
		conversations:        conversations,
		profiles:             profiles,
		goals:                goals,
		availability:         availability,
		reviews:              reviews,
		analytics:            analytics,
		attachments:          attachments,
		tokens:               tokens,
		limiter:              limiter,
		monitor:              monitor,
		connectionBufferSize: connectionBufferSize,
	}
}

// Router wires all routes. Everything under /api/v1 requires a session.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/debug/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.monitor.Snapshot())
	})

	api := r.Group("/api/v1", auth.Middleware(s.tokens))
	{
		api.POST("/conversations/open", s.openConversation)
		api.POST("/conversations/:id/messages", s.sendMessage)
		api.POST("/conversations/:id/attachments", s.uploadAttachment)
		api.GET("/conversations/:id/feed", s.feed)
		api.GET("/attachments/*path", s.serveAttachment)

		api.GET("/profiles/me", s.getOwnProfile)
		api.PUT("/profiles/me", s.upsertProfile)
		api.GET("/profiles/:id", s.getProfile)
		api.GET("/mentors/search", s.searchMentors)
		api.GET("/mentors/:id/reviews", s.listReviews)
		api.POST("/mentors/:id/reviews", s.createReview)
		api.GET("/mentors/:id/availability", s.listAvailability)

		api.GET("/goals", s.listGoals)
		api.POST("/goals", s.createGoal)
		api.PATCH("/goals/:id", s.updateGoal)
		api.GET("/goals/:id/tasks", s.listTasks)
		api.POST("/goals/:id/tasks", s.addTask)
		api.PATCH("/goals/:id/tasks/:taskID", s.setTaskCompleted)

		api.POST("/availability", s.addSlot)
		api.PATCH("/availability/:id", s.setSlotAvailable)
		api.DELETE("/availability/:id", s.removeSlot)

		api.GET("/analytics/summary", s.analyticsSummary)
	}
	return r
}

// fail maps domain errors onto HTTP statuses. Unknown errors are internal
// and logged with their cause; the client sees only the category.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrConversationNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrGoalNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrRateLimited):
		status = http.StatusTooManyRequests
	}
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
