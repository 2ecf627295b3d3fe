package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentconnect/auth"
	apperrors "mentconnect/errors"
	"mentconnect/services"
)

type upsertProfileRequest struct {
	DisplayName     string   `json:"display_name" binding:"required"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	UserType        string   `json:"user_type" binding:"required"`
	Location        string   `json:"location"`
	Company         string   `json:"company"`
	Specializations []string `json:"specializations"`
	Languages       []string `json:"languages"`
	YearsExperience int      `json:"years_of_experience"`
	HourlyRate      float64  `json:"hourly_rate"`
	AvatarURL       string   `json:"avatar_url"`
	IsAvailable     bool     `json:"is_available"`
}

func (s *Server) getOwnProfile(c *gin.Context) {
	profile, err := s.profiles.Get(auth.CurrentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) upsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.ErrInvalidInput)
		return
	}

	profile, err := s.profiles.Upsert(services.UpsertProfileCommand{
		UserID:          auth.CurrentUserID(c),
		DisplayName:     req.DisplayName,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Title:           req.Title,
		Bio:             req.Bio,
		UserType:        req.UserType,
		Location:        req.Location,
		Company:         req.Company,
		Specializations: req.Specializations,
		Languages:       req.Languages,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		AvatarURL:       req.AvatarURL,
		IsAvailable:     req.IsAvailable,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.profiles.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) searchMentors(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			s.fail(c, apperrors.ErrInvalidInput)
			return
		}
		limit = parsed
	}

	mentors, err := s.profiles.SearchMentors(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}
