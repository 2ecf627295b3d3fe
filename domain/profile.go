package domain

import "time"

type UserType string

const (
	Mentor UserType = "mentor"
	Mentee UserType = "mentee"
)

// Profile is the public face of a user, mentor or mentee.
type Profile struct {
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Title           string    `json:"title"`
	Bio             string    `json:"bio"`
	UserType        UserType  `json:"user_type"`
	Location        string    `json:"location"`
	Company         string    `json:"company"`
	Specializations []string  `json:"specializations"`
	Languages       []string  `json:"languages"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	AvatarURL       string    `json:"avatar_url"`
	IsAvailable     bool      `json:"is_available"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
