package auth

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"codeberg.org/fitstack/server/fitstack/users"
	"codeberg.org/fitstack/server/internal/errors"
	"codeberg.org/fitstack/server/internal/identity"
	"codeberg.org/fitstack/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// RegisterHandler godoc
// @Summary Register a new user
// @Description Create an identity with the provider, then materialize the user locally
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/register [post]
func RegisterHandler(gateway IdentityGateway, directory UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		email := strings.ToLower(req.Email)
		username := strings.ToLower(req.Username)

		// provider first: Cognito is the system of record for whether the
		// credential exists; local state only ever follows a confirmed identity
		registration, err := gateway.Register(c.Request.Context(), identity.RegisterParams{
			Email:     email,
			Password:  req.Password,
			Username:  username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			errors.FromIdentity(c, err)
			return
		}

		userID := registration.ExternalID
		createdAt := time.Now().UTC()

		// the identity is durable upstream at this point; a failed local write
		// is logged and left to self-heal, never surfaced (retrying the
		// provider call would only yield USER_EXISTS)
		user, err := directory.Create(c.Request.Context(), users.CreateParams{
			ExternalID: registration.ExternalID,
			Email:      email,
			Username:   username,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
		})
		if err != nil {
			logger.ErrorErr(err, "provider registration succeeded but local user creation failed",
				"email", email,
				"external_id", registration.ExternalID,
			)
		} else {
			userID = user.ID
			createdAt = user.CreatedAt
		}

		c.JSON(http.StatusCreated, RegisterResponse{
			UserID:    userID,
			Email:     email,
			Username:  username,
			CreatedAt: createdAt,
			Message:   "User registered successfully",
		})
	}
}

// LoginHandler godoc
// @Summary Authenticate with email and password
// @Description Returns a token bundle, or 202 with challenge data when the provider requires a secondary step
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} identity.TokenBundle
// @Success 202 {object} ChallengeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(gateway IdentityGateway, directory UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		email := strings.ToLower(req.Email)

		outcome, err := gateway.Authenticate(c.Request.Context(), email, req.Password)
		if err != nil {
			errors.FromIdentity(c, err)
			return
		}

		// a challenge is a first-class outcome with its own response shape;
		// resolving it is the client's job
		if outcome.Challenge != nil {
			c.JSON(http.StatusAccepted, ChallengeResponse{
				Challenge: outcome.Challenge.Name,
				Session:   outcome.Challenge.Session,
				Message:   "Authentication challenge required",
			})
			return
		}

		// opportunistic bookkeeping: a missing local row or write failure must
		// not block a provider-confirmed login
		if err := directory.UpdateLastLogin(c.Request.Context(), email); err != nil {
			logger.ErrorErr(err, "failed to update last login", "email", email)
		}

		c.JSON(http.StatusOK, outcome.Tokens)
	}
}

// GoogleAuthHandler godoc
// @Summary Authenticate with a Google id token
// @Description Exchanges a validated Google id token for a token bundle; creates the local user on first sight
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google id token"
// @Success 200 {object} identity.TokenBundle
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/google [post]
func GoogleAuthHandler(gateway IdentityGateway, directory UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GoogleAuthRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		federated, err := gateway.AuthenticateFederated(c.Request.Context(), req.GoogleIDToken)
		if err != nil {
			errors.FromIdentity(c, err)
			return
		}

		// the only path where the local row is created from provider-observed
		// attributes rather than caller-supplied ones
		if _, err := directory.FindByEmail(c.Request.Context(), federated.Email); err != nil {
			if stderrors.Is(err, users.ErrNotFound) {
				if _, err := directory.Create(c.Request.Context(), users.CreateParams{
					ExternalID: federated.ExternalID,
					Email:      federated.Email,
					Username:   usernameFromEmail(federated.Email),
					FirstName:  federated.GivenName,
					LastName:   federated.FamilyName,
				}); err != nil {
					logger.ErrorErr(err, "federated login succeeded but local user creation failed",
						"email", federated.Email,
					)
				}
			} else {
				logger.ErrorErr(err, "failed to look up user after federated login",
					"email", federated.Email,
				)
			}
		}

		c.JSON(http.StatusOK, federated.Tokens)
	}
}

// RefreshHandler godoc
// @Summary Refresh the token bundle
// @Description Pure pass-through to the identity provider; no local-store interaction
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} identity.TokenBundle
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/refresh-token [post]
func RefreshHandler(gateway IdentityGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		bundle, err := gateway.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			errors.FromIdentity(c, err)
			return
		}

		c.JSON(http.StatusOK, bundle)
	}
}

// derives a username from the email's local part
func usernameFromEmail(email string) string {
	localPart, _, _ := strings.Cut(email, "@")
	return strings.ToLower(localPart)
}
