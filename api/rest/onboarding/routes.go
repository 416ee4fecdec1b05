package onboarding

import (
	"codeberg.org/fitstack/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the onboarding routes; all of them require a verified bearer token
func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, directory UserDirectory) {
	onboardingGroup := router.Group("/onboarding")
	onboardingGroup.Use(auth.RequireAuth(verifier))
	{
		onboardingGroup.PUT("", CompleteOnboardingHandler(directory))
	}
}
