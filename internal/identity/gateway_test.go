package identity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

// in-memory stand-in for the Cognito API
type fakeCognito struct {
	signUpOut   *cognitoidentityprovider.SignUpOutput
	signUpErr   error
	signUpIn    *cognitoidentityprovider.SignUpInput
	signUpCalls int

	initiateOut   *cognitoidentityprovider.InitiateAuthOutput
	initiateErr   error
	initiateIn    *cognitoidentityprovider.InitiateAuthInput
	initiateCalls int

	getUserOut *cognitoidentityprovider.GetUserOutput
	getUserErr error
}

func (f *fakeCognito) SignUp(_ context.Context, params *cognitoidentityprovider.SignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	f.signUpCalls++
	f.signUpIn = params
	return f.signUpOut, f.signUpErr
}

func (f *fakeCognito) InitiateAuth(_ context.Context, params *cognitoidentityprovider.InitiateAuthInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	f.initiateCalls++
	f.initiateIn = params
	return f.initiateOut, f.initiateErr
}

func (f *fakeCognito) GetUser(_ context.Context, _ *cognitoidentityprovider.GetUserInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
	return f.getUserOut, f.getUserErr
}

func newTestGateway(client cognitoAPI) *Gateway {
	return &Gateway{
		client:         client,
		clientID:       "test-client-id",
		clientSecret:   "test-client-secret",
		userPoolID:     "us-east-1_TestPool",
		googleClientID: "google-client-id",
	}
}

func authResult() *types.AuthenticationResultType {
	return &types.AuthenticationResultType{
		AccessToken:  aws.String("access-token"),
		IdToken:      aws.String("id-token"),
		RefreshToken: aws.String("refresh-token"),
		ExpiresIn:    3600,
		TokenType:    aws.String("Bearer"),
	}
}

func TestRegister_Success(t *testing.T) {
	fake := &fakeCognito{
		signUpOut: &cognitoidentityprovider.SignUpOutput{
			UserSub:       aws.String("sub-123"),
			UserConfirmed: false,
		},
	}
	g := newTestGateway(fake)

	reg, err := g.Register(context.Background(), RegisterParams{
		Email:     "user@example.com",
		Password:  "Valid123!",
		Username:  "valid_user-1",
		FirstName: "Ada",
	})

	require.NoError(t, err)
	assert.Equal(t, "sub-123", reg.ExternalID)
	assert.False(t, reg.Confirmed)

	require.NotNil(t, fake.signUpIn)
	assert.Equal(t, "user@example.com", aws.ToString(fake.signUpIn.Username))
	assert.NotNil(t, fake.signUpIn.SecretHash, "confidential client must attach the secret hash")

	attrs := map[string]string{}
	for _, a := range fake.signUpIn.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	assert.Equal(t, "valid_user-1", attrs["preferred_username"])
	assert.Equal(t, "Ada", attrs["given_name"])
	_, hasFamilyName := attrs["family_name"]
	assert.False(t, hasFamilyName, "unset optional attributes must be omitted")
}

func TestRegister_WeakPasswordRejectedBeforeNetworkCall(t *testing.T) {
	fake := &fakeCognito{}
	g := newTestGateway(fake)

	_, err := g.Register(context.Background(), RegisterParams{
		Email:    "user@example.com",
		Password: "short1!",
		Username: "user",
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidPassword, authErr.Code)
	assert.Zero(t, fake.signUpCalls, "invalid password must never reach the provider")
}

func TestRegister_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"duplicate user", &types.UsernameExistsException{Message: aws.String("exists")}, CodeUserExists},
		{"provider password policy", &types.InvalidPasswordException{Message: aws.String("too weak")}, CodeInvalidPassword},
		{"invalid parameter", &types.InvalidParameterException{Message: aws.String("bad email")}, CodeInvalidParameter},
		{"other provider error", &types.TooManyRequestsException{Message: aws.String("slow down")}, CodeRegistrationFailed},
		{"transport failure", fmt.Errorf("dial tcp: connection refused"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(&fakeCognito{signUpErr: tt.err})

			_, err := g.Register(context.Background(), RegisterParams{
				Email:    "user@example.com",
				Password: "Valid123!",
				Username: "user",
			})

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
			assert.ErrorIs(t, authErr, tt.err, "original provider error must stay wrapped")
		})
	}
}

func TestAuthenticate_Success(t *testing.T) {
	fake := &fakeCognito{
		initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
			AuthenticationResult: authResult(),
		},
	}
	g := newTestGateway(fake)

	outcome, err := g.Authenticate(context.Background(), "user@example.com", "Valid123!")

	require.NoError(t, err)
	require.NotNil(t, outcome.Tokens)
	assert.Nil(t, outcome.Challenge)
	assert.Equal(t, "access-token", outcome.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", outcome.Tokens.RefreshToken)
	assert.EqualValues(t, 3600, outcome.Tokens.ExpiresIn)

	require.NotNil(t, fake.initiateIn)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, fake.initiateIn.AuthFlow)
	assert.NotEmpty(t, fake.initiateIn.AuthParameters["SECRET_HASH"])
}

func TestAuthenticate_ChallengeIsNotAnError(t *testing.T) {
	fake := &fakeCognito{
		initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
			ChallengeName: types.ChallengeNameTypeSmsMfa,
			Session:       aws.String("challenge-session"),
		},
	}
	g := newTestGateway(fake)

	outcome, err := g.Authenticate(context.Background(), "user@example.com", "Valid123!")

	require.NoError(t, err)
	assert.Nil(t, outcome.Tokens)
	require.NotNil(t, outcome.Challenge)
	assert.Equal(t, "SMS_MFA", outcome.Challenge.Name)
	assert.Equal(t, "challenge-session", outcome.Challenge.Session)
}

func TestAuthenticate_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"wrong password", &types.NotAuthorizedException{Message: aws.String("nope")}, CodeInvalidCredentials},
		{"unknown user", &types.UserNotFoundException{Message: aws.String("who")}, CodeUserNotFound},
		{"unconfirmed", &types.UserNotConfirmedException{Message: aws.String("confirm first")}, CodeUserNotConfirmed},
		{"reset required", &types.PasswordResetRequiredException{Message: aws.String("reset")}, CodePasswordResetRequired},
		{"other provider error", &types.TooManyRequestsException{Message: aws.String("slow down")}, CodeAuthFailed},
		{"transport failure", errors.New("context deadline exceeded"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(&fakeCognito{initiateErr: tt.err})

			_, err := g.Authenticate(context.Background(), "user@example.com", "Valid123!")

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestRefresh_ReturnsInputRefreshTokenVerbatim(t *testing.T) {
	result := authResult()
	result.RefreshToken = nil // the refresh flow does not reissue one

	fake := &fakeCognito{
		initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
			AuthenticationResult: result,
		},
	}
	g := newTestGateway(fake)

	bundle, err := g.Refresh(context.Background(), "original-refresh-token")

	require.NoError(t, err)
	assert.Equal(t, "original-refresh-token", bundle.RefreshToken)
	assert.Equal(t, "access-token", bundle.AccessToken)

	require.NotNil(t, fake.initiateIn)
	assert.Equal(t, types.AuthFlowTypeRefreshTokenAuth, fake.initiateIn.AuthFlow)
	assert.Equal(t, "original-refresh-token", fake.initiateIn.AuthParameters["REFRESH_TOKEN"])
}

func TestRefresh_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"revoked token", &types.NotAuthorizedException{Message: aws.String("revoked")}, CodeInvalidRefreshToken},
		{"other provider error", &types.InternalErrorException{Message: aws.String("boom")}, CodeRefreshFailed},
		{"transport failure", errors.New("connection reset"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(&fakeCognito{initiateErr: tt.err})

			_, err := g.Refresh(context.Background(), "token")

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestVerify_Success(t *testing.T) {
	fake := &fakeCognito{
		getUserOut: &cognitoidentityprovider.GetUserOutput{
			Username: aws.String("user@example.com"),
			UserAttributes: []types.AttributeType{
				{Name: aws.String("sub"), Value: aws.String("sub-123")},
				{Name: aws.String("email"), Value: aws.String("user@example.com")},
			},
		},
	}
	g := newTestGateway(fake)

	info, err := g.Verify(context.Background(), "access-token")

	require.NoError(t, err)
	assert.Equal(t, "sub-123", info.Subject)
	assert.Equal(t, "user@example.com", info.Username)
	assert.Equal(t, "user@example.com", info.Attributes["email"])
}

func TestVerify_AnyFailureCollapsesToInvalidToken(t *testing.T) {
	failures := []error{
		&types.NotAuthorizedException{Message: aws.String("expired")},
		&types.ResourceNotFoundException{Message: aws.String("gone")},
		errors.New("dial tcp: timeout"),
	}

	for _, failure := range failures {
		g := newTestGateway(&fakeCognito{getUserErr: failure})

		_, err := g.Verify(context.Background(), "bad-token")

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, CodeInvalidToken, authErr.Code)
	}
}

func TestAuthenticateFederated_Success(t *testing.T) {
	fake := &fakeCognito{
		initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
			AuthenticationResult: authResult(),
		},
	}
	g := newTestGateway(fake)
	g.validateIDToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "google-token", token)
		assert.Equal(t, "google-client-id", audience)
		return &idtoken.Payload{
			Subject: "google-sub-1",
			Claims: map[string]any{
				"email":       "fed@example.com",
				"given_name":  "Fed",
				"family_name": "User",
			},
		}, nil
	}

	identity, err := g.AuthenticateFederated(context.Background(), "google-token")

	require.NoError(t, err)
	assert.Equal(t, "fed@example.com", identity.Email)
	assert.Equal(t, "Fed", identity.GivenName)
	assert.Equal(t, "User", identity.FamilyName)
	assert.Equal(t, "google-sub-1", identity.ExternalID)
	require.NotNil(t, identity.Tokens)
	assert.Equal(t, "access-token", identity.Tokens.AccessToken)

	require.NotNil(t, fake.initiateIn)
	assert.Equal(t, types.AuthFlowTypeCustomAuth, fake.initiateIn.AuthFlow)
	assert.Equal(t, "GOOGLE_AUTH", fake.initiateIn.AuthParameters["CHALLENGE_NAME"])
	assert.Equal(t, "google-token", fake.initiateIn.AuthParameters["GOOGLE_TOKEN"])
}

func TestAuthenticateFederated_InvalidToken(t *testing.T) {
	fake := &fakeCognito{}
	g := newTestGateway(fake)
	g.validateIDToken = func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: signature mismatch")
	}

	_, err := g.AuthenticateFederated(context.Background(), "forged")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeFederatedAuthFailed, authErr.Code)
	assert.Zero(t, fake.initiateCalls, "invalid federated token must never reach the provider")
}

func TestAuthenticateFederated_MissingEmailClaim(t *testing.T) {
	g := newTestGateway(&fakeCognito{})
	g.validateIDToken = func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "sub", Claims: map[string]any{}}, nil
	}

	_, err := g.AuthenticateFederated(context.Background(), "token")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeFederatedAuthFailed, authErr.Code)
}
