package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// registers a new identity with the provider. The provider owns credential
// storage and password policy enforcement; the local composite policy is
// checked first so invalid passwords are rejected before any network call.
func (g *Gateway) Register(ctx context.Context, p RegisterParams) (*Registration, error) {
	if err := ValidatePassword(p.Password); err != nil {
		return nil, newAuthError(CodeInvalidPassword, err.Error(), err)
	}

	attributes := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(p.Email)},
		{Name: aws.String("preferred_username"), Value: aws.String(p.Username)},
	}

	if p.FirstName != "" {
		attributes = append(attributes, types.AttributeType{
			Name:  aws.String("given_name"),
			Value: aws.String(p.FirstName),
		})
	}

	if p.LastName != "" {
		attributes = append(attributes, types.AttributeType{
			Name:  aws.String("family_name"),
			Value: aws.String(p.LastName),
		})
	}

	input := &cognitoidentityprovider.SignUpInput{
		ClientId:       aws.String(g.clientID),
		Username:       aws.String(p.Email),
		Password:       aws.String(p.Password),
		UserAttributes: attributes,
	}

	if hash := g.secretHash(p.Email); hash != "" {
		input.SecretHash = aws.String(hash)
	}

	out, err := g.client.SignUp(ctx, input)
	if err != nil {
		return nil, mapRegisterError(err)
	}

	return &Registration{
		ExternalID: aws.ToString(out.UserSub),
		Confirmed:  out.UserConfirmed,
	}, nil
}

// authenticates an email/password pair. A provider challenge is returned as a
// first-class outcome rather than an error; callers must propagate it with its
// own response shape.
func (g *Gateway) Authenticate(ctx context.Context, email, password string) (*AuthOutcome, error) {
	params := map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	}

	if hash := g.secretHash(email); hash != "" {
		params["SECRET_HASH"] = hash
	}

	out, err := g.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: params,
		ClientId:       aws.String(g.clientID),
	})
	if err != nil {
		return nil, mapAuthenticateError(err)
	}

	if out.ChallengeName != "" {
		return &AuthOutcome{
			Challenge: &Challenge{
				Name:    string(out.ChallengeName),
				Session: aws.ToString(out.Session),
			},
		}, nil
	}

	bundle, err := bundleFromResult(out.AuthenticationResult, "")
	if err != nil {
		return nil, err
	}

	return &AuthOutcome{Tokens: bundle}, nil
}

// exchanges a refresh token for fresh access/id tokens. The provider's
// refresh flow does not reissue a refresh token, so the input token is
// returned verbatim in the bundle.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (*TokenBundle, error) {
	params := map[string]string{
		"REFRESH_TOKEN": refreshToken,
	}

	if hash := g.secretHash(refreshToken); hash != "" {
		params["SECRET_HASH"] = hash
	}

	out, err := g.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: params,
		ClientId:       aws.String(g.clientID),
	})
	if err != nil {
		return nil, mapRefreshError(err)
	}

	return bundleFromResult(out.AuthenticationResult, refreshToken)
}

// introspects an access token against the provider. Every failure mode
// (expired, revoked, malformed) collapses to a single invalid-token code so
// nothing about the provider leaks to unauthenticated callers.
func (g *Gateway) Verify(ctx context.Context, accessToken string) (*TokenInfo, error) {
	out, err := g.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, newAuthError(CodeInvalidToken, "Invalid or expired access token", err)
	}

	attributes := make(map[string]string, len(out.UserAttributes))
	for _, attr := range out.UserAttributes {
		attributes[aws.ToString(attr.Name)] = aws.ToString(attr.Value)
	}

	return &TokenInfo{
		Subject:    attributes["sub"],
		Username:   aws.ToString(out.Username),
		Attributes: attributes,
	}, nil
}

// builds a token bundle from the provider's authentication result,
// substituting refreshToken when the flow does not reissue one
func bundleFromResult(result *types.AuthenticationResultType, refreshToken string) (*TokenBundle, error) {
	if result == nil {
		return nil, newAuthError(CodeInternal, "identity provider returned no authentication result", nil)
	}

	if refreshToken == "" {
		refreshToken = aws.ToString(result.RefreshToken)
	}

	return &TokenBundle{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: refreshToken,
		ExpiresIn:    result.ExpiresIn,
		TokenType:    aws.ToString(result.TokenType),
	}, nil
}

// maps provider registration failures to the closed taxonomy
func mapRegisterError(err error) *AuthError {
	var (
		userExists  *types.UsernameExistsException
		badPassword *types.InvalidPasswordException
		badParam    *types.InvalidParameterException
	)

	switch {
	case errors.As(err, &userExists):
		return newAuthError(CodeUserExists, "User with this email already exists", err)
	case errors.As(err, &badPassword):
		return newAuthError(CodeInvalidPassword, badPassword.ErrorMessage(), err)
	case errors.As(err, &badParam):
		return newAuthError(CodeInvalidParameter, badParam.ErrorMessage(), err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return newAuthError(CodeRegistrationFailed, "Failed to register user", err)
	}

	return newAuthError(CodeInternal, "An unexpected error occurred", err)
}

// maps provider authentication failures to the closed taxonomy
func mapAuthenticateError(err error) *AuthError {
	var (
		notAuthorized *types.NotAuthorizedException
		userNotFound  *types.UserNotFoundException
		notConfirmed  *types.UserNotConfirmedException
		resetRequired *types.PasswordResetRequiredException
	)

	switch {
	case errors.As(err, &notAuthorized):
		return newAuthError(CodeInvalidCredentials, "Invalid email or password", err)
	case errors.As(err, &userNotFound):
		return newAuthError(CodeUserNotFound, "User not found", err)
	case errors.As(err, &notConfirmed):
		return newAuthError(CodeUserNotConfirmed, "User account not confirmed", err)
	case errors.As(err, &resetRequired):
		return newAuthError(CodePasswordResetRequired, "Password reset required", err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return newAuthError(CodeAuthFailed, "Authentication failed", err)
	}

	return newAuthError(CodeInternal, "An unexpected error occurred", err)
}

// maps provider refresh failures to the closed taxonomy
func mapRefreshError(err error) *AuthError {
	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		return newAuthError(CodeInvalidRefreshToken, "Invalid or expired refresh token", err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return newAuthError(CodeRefreshFailed, "Failed to refresh tokens", err)
	}

	return newAuthError(CodeInternal, "An unexpected error occurred", err)
}
