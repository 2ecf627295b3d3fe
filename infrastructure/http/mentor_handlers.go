package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentconnect/auth"
	apperrors "mentconnect/errors"
	"mentconnect/services"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type addSlotRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type setSlotAvailableRequest struct {
	Available bool `json:"is_available"`
}

func (s *Server) listReviews(c *gin.Context) {
	mentorID := c.Param("id")
	reviews, err := s.reviews.ListByMentor(mentorID)
	if err != nil {
		s.fail(c, err)
		return
	}
	average, err := s.reviews.AverageRating(mentorID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "average_rating": average})
}

func (s *Server) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	review, err := s.reviews.Create(c.Param("id"), auth.CurrentUserID(c), req.Rating, req.Comment)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (s *Server) listAvailability(c *gin.Context) {
	slots, err := s.availability.List(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// addSlot creates an availability slot for the calling mentor.
func (s *Server) addSlot(c *gin.Context) {
	var req addSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	slot, err := s.availability.AddSlot(services.AddSlotCommand{
		MentorID:  auth.CurrentUserID(c),
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (s *Server) setSlotAvailable(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}
	var req setSlotAvailableRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	if err = s.availability.SetSlotAvailable(auth.CurrentUserID(c), slotID, req.Available); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	if err = s.availability.RemoveSlot(auth.CurrentUserID(c), slotID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) analyticsSummary(c *gin.Context) {
	summary, err := s.analytics.Summarize(auth.CurrentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
