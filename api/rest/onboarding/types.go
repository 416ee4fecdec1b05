package onboarding

import (
	"context"
	"time"

	"codeberg.org/fitstack/server/fitstack/users"
)

// the local-store operations the onboarding handler needs
type UserDirectory interface {
	FindByExternalID(ctx context.Context, externalID string) (*users.User, error)
	UpsertProfile(ctx context.Context, userID string, update users.ProfileUpdate) (*users.Profile, error)
}

// OnboardingRequest carries the profile fields gathered during onboarding.
// Every field is optional; omitted fields leave the stored value untouched.
type OnboardingRequest struct {
	FitnessLevel         *string  `json:"fitness_level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Goals                []string `json:"goals"`
	Equipment            []string `json:"equipment"`
	Age                  *int     `json:"age" binding:"omitempty,gte=13,lte=120"`
	HeightCm             *float64 `json:"height_cm" binding:"omitempty,gte=50,lte=300"`
	WeightKg             *float64 `json:"weight_kg" binding:"omitempty,gte=20,lte=500"`
	PreferredWorkoutTime *string  `json:"preferred_workout_time" binding:"omitempty,max=50"`
	InjuryNotes          *string  `json:"injury_notes"`
}

// ProfileResponse is the merged user + profile view returned after onboarding
type ProfileResponse struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	Username               string    `json:"username"`
	FirstName              *string   `json:"first_name"`
	LastName               *string   `json:"last_name"`
	FitnessLevel           *string   `json:"fitness_level"`
	Goals                  []string  `json:"goals"`
	Equipment              []string  `json:"equipment"`
	Age                    *int      `json:"age"`
	HeightCm               *float64  `json:"height_cm"`
	WeightKg               *float64  `json:"weight_kg"`
	PreferredWorkoutTime   *string   `json:"preferred_workout_time"`
	InjuryNotes            *string   `json:"injury_notes"`
	HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
