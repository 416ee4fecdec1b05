package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user and profile database operations; the source of truth for
// everything the identity provider does not track
type Repository struct {
	db *pgxpool.Pool
}

// represents one authenticated principal, materialized locally. ID is locally
// generated; ExternalID is the identity provider's stable subject identifier.
type User struct {
	ID         string     `json:"id"`
	ExternalID string     `json:"-"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login"`
}

// one-to-one extension of User, owned entirely locally
type Profile struct {
	ID                     string     `json:"-"`
	UserID                 string     `json:"-"`
	FitnessLevel           *string    `json:"fitness_level"`
	Goals                  []string   `json:"goals"`
	Equipment              []string   `json:"equipment"`
	Age                    *int       `json:"age"`
	HeightCm               *float64   `json:"height_cm"`
	WeightKg               *float64   `json:"weight_kg"`
	PreferredWorkoutTime   *string    `json:"preferred_workout_time"`
	InjuryNotes            *string    `json:"injury_notes"`
	HasCompletedOnboarding bool       `json:"has_completed_onboarding"`
	CreatedAt              time.Time  `json:"-"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// contains data for creating a user; email and username are lowercased before
// storage
type CreateParams struct {
	ExternalID string
	Email      string
	Username   string
	FirstName  string
	LastName   string
}

// partial profile update; nil fields are left untouched
type ProfileUpdate struct {
	FitnessLevel         *string
	Goals                []string
	Equipment            []string
	Age                  *int
	HeightCm             *float64
	WeightKg             *float64
	PreferredWorkoutTime *string
	InjuryNotes          *string
}
