package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// authenticates with a Google id token: validates the token's signature and
// audience against the configured client identifier, then exchanges it with
// the user pool's custom auth flow for a token bundle. Every failure collapses
// to a single federated-auth code.
func (g *Gateway) AuthenticateFederated(ctx context.Context, googleIDToken string) (*FederatedIdentity, error) {
	payload, err := g.validateIDToken(ctx, googleIDToken, g.googleClientID)
	if err != nil {
		return nil, newAuthError(CodeFederatedAuthFailed, "Google authentication failed", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, newAuthError(CodeFederatedAuthFailed, "Google token is missing the email claim", nil)
	}

	givenName, _ := payload.Claims["given_name"].(string)
	familyName, _ := payload.Claims["family_name"].(string)

	out, err := g.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeCustomAuth,
		AuthParameters: map[string]string{
			"USERNAME":       email,
			"CHALLENGE_NAME": "GOOGLE_AUTH",
			"GOOGLE_TOKEN":   googleIDToken,
		},
		ClientId: aws.String(g.clientID),
	})
	if err != nil {
		return nil, newAuthError(CodeFederatedAuthFailed, "Google authentication failed", err)
	}

	bundle, err := bundleFromResult(out.AuthenticationResult, "")
	if err != nil {
		return nil, newAuthError(CodeFederatedAuthFailed, "Google authentication failed", err)
	}

	return &FederatedIdentity{
		Email:      email,
		GivenName:  givenName,
		FamilyName: familyName,
		ExternalID: payload.Subject,
		Tokens:     bundle,
	}, nil
}
