package onboarding

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/fitstack/server/fitstack/users"
	"codeberg.org/fitstack/server/internal/auth"
	"codeberg.org/fitstack/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// CompleteOnboardingHandler godoc
// @Summary Complete or update user onboarding
// @Description Applies the supplied profile fields and marks onboarding complete; omitted fields are left untouched
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OnboardingRequest true "Profile data"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/onboarding [put]
func CompleteOnboardingHandler(directory UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID, ok := auth.GetExternalID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req OnboardingRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		// the verified subject resolves to a local row; a missing row means
		// registration never materialized the user here
		user, err := directory.FindByExternalID(c.Request.Context(), externalID)
		if err != nil {
			if stderrors.Is(err, users.ErrNotFound) {
				errors.NotFound(c, "user")
				return
			}

			errors.InternalError(c, "failed to update profile", err)
			return
		}

		profile, err := directory.UpsertProfile(c.Request.Context(), user.ID, users.ProfileUpdate{
			FitnessLevel:         req.FitnessLevel,
			Goals:                req.Goals,
			Equipment:            req.Equipment,
			Age:                  req.Age,
			HeightCm:             req.HeightCm,
			WeightKg:             req.WeightKg,
			PreferredWorkoutTime: req.PreferredWorkoutTime,
			InjuryNotes:          req.InjuryNotes,
		})
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{
			ID:                     user.ID,
			Email:                  user.Email,
			Username:               user.Username,
			FirstName:              user.FirstName,
			LastName:               user.LastName,
			FitnessLevel:           profile.FitnessLevel,
			Goals:                  profile.Goals,
			Equipment:              profile.Equipment,
			Age:                    profile.Age,
			HeightCm:               profile.HeightCm,
			WeightKg:               profile.WeightKg,
			PreferredWorkoutTime:   profile.PreferredWorkoutTime,
			InjuryNotes:            profile.InjuryNotes,
			HasCompletedOnboarding: profile.HasCompletedOnboarding,
			CreatedAt:              user.CreatedAt,
			UpdatedAt:              profile.UpdatedAt,
		})
	}
}
