package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
	"mentconnect/repositories"
	"mentconnect/search"
)

var validate = validator.New()

// UpsertProfileCommand carries profile fields a user may edit.
type UpsertProfileCommand struct {
	UserID          string   `validate:"required"`
	DisplayName     string   `validate:"required,max=100"`
	FirstName       string   `validate:"max=100"`
	LastName        string   `validate:"max=100"`
	Title           string   `validate:"max=200"`
	Bio             string   `validate:"max=2000"`
	UserType        string   `validate:"required,oneof=mentor mentee"`
	Location        string   `validate:"max=200"`
	Company         string   `validate:"max=200"`
	Specializations []string `validate:"max=20,dive,max=100"`
	Languages       []string `validate:"max=10,dive,max=50"`
	YearsExperience int      `validate:"gte=0,lte=80"`
	HourlyRate      float64  `validate:"gte=0"`
	AvatarURL       string   `validate:"omitempty,url"`
	IsAvailable     bool
}

type ProfileService struct {
	log      *slog.Logger
	profiles repositories.IProfileRepository
	index    *search.MentorIndex
}

func NewProfileService(log *slog.Logger, profiles repositories.IProfileRepository, index *search.MentorIndex) *ProfileService {
	return &ProfileService{log: log, profiles: profiles, index: index}
}

// Upsert validates and stores the profile; mentors also land in the
// discovery index.
func (s *ProfileService) Upsert(cmd UpsertProfileCommand) (domain.Profile, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	existing, err := s.profiles.Get(cmd.UserID)
	if err != nil && err != apperrors.ErrProfileNotFound {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		UserID:          cmd.UserID,
		DisplayName:     cmd.DisplayName,
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		Title:           cmd.Title,
		Bio:             cmd.Bio,
		UserType:        domain.UserType(cmd.UserType),
		Location:        cmd.Location,
		Company:         cmd.Company,
		Specializations: cmd.Specializations,
		Languages:       cmd.Languages,
		YearsExperience: cmd.YearsExperience,
		HourlyRate:      cmd.HourlyRate,
		AvatarURL:       cmd.AvatarURL,
		IsAvailable:     cmd.IsAvailable,
		IsVerified:      existing.IsVerified,
		CreatedAt:       existing.CreatedAt,
	}
	if err = s.profiles.Upsert(profile); err != nil {
		return domain.Profile{}, err
	}
	if profile.UserType == domain.Mentor {
		if err = s.index.Index(profile); err != nil {
			// The row is authoritative; a stale index entry is recoverable
			// by re-saving the profile.
			s.log.Error("Mentor indexing failed", "user_id", profile.UserID, "error", err)
		}
	}
	return profile, nil
}

func (s *ProfileService) Get(userID string) (domain.Profile, error) {
	return s.profiles.Get(userID)
}

// SearchMentors resolves index hits back to full profiles, dropping ids
// whose row vanished since indexing.
func (s *ProfileService) SearchMentors(ctx context.Context, query string, limit int) ([]domain.Profile, error) {
	if query == "" {
		return s.profiles.ListMentors()
	}
	ids, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := s.profiles.Get(id)
		if err == apperrors.ErrProfileNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// ReindexMentors rebuilds the discovery index from the stored rows.
// Called once at startup; the index is disposable state.
func (s *ProfileService) ReindexMentors() error {
	mentors, err := s.profiles.ListMentors()
	if err != nil {
		return err
	}
	errs := lo.FilterMap(mentors, func(mentor domain.Profile, _ int) (error, bool) {
		err := s.index.Index(mentor)
		return err, err != nil
	})
	if len(errs) > 0 {
		return fmt.Errorf("reindex: %d of %d mentors failed, first: %v", len(errs), len(mentors), errs[0])
	}
	s.log.Info(fmt.Sprintf("%d mentors indexed", len(mentors)))
	return nil
}
