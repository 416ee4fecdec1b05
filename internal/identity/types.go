package identity

import (
	"context"

	"codeberg.org/fitstack/server/internal/config"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"google.golang.org/api/idtoken"
)

// Gateway is the sole authority for credential-bearing operations. It wraps
// the Cognito user pool client and translates provider error codes into the
// local taxonomy.
type Gateway struct {
	client          cognitoAPI
	clientID        string
	clientSecret    string
	userPoolID      string
	googleClientID  string
	validateIDToken idTokenValidator
}

// the subset of the Cognito API the gateway depends on
type cognitoAPI interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
}

// verifies a federated id token's signature and audience
type idTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// creates a gateway backed by the configured Cognito user pool
func NewGateway(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	return &Gateway{
		client:          cognitoidentityprovider.NewFromConfig(awsCfg),
		clientID:        cfg.CognitoClientID,
		clientSecret:    cfg.CognitoClientSecret,
		userPoolID:      cfg.CognitoUserPoolID,
		googleClientID:  cfg.GoogleClientID,
		validateIDToken: idtoken.Validate,
	}, nil
}

// contains inputs for provider-side registration
type RegisterParams struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// the provider's view of a freshly registered identity
type Registration struct {
	ExternalID string
	Confirmed  bool
}

// the token triple plus expiry metadata issued by the provider; values are
// opaque and passed through untouched
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// an intermediate authentication step the provider requires before issuing
// tokens (e.g. MFA); a first-class outcome, not an error
type Challenge struct {
	Name    string `json:"challenge"`
	Session string `json:"session"`
}

// result of an authentication attempt: exactly one of Tokens or Challenge is set
type AuthOutcome struct {
	Tokens    *TokenBundle
	Challenge *Challenge
}

// a provider-confirmed federated identity plus its session tokens
type FederatedIdentity struct {
	Email      string
	GivenName  string
	FamilyName string
	ExternalID string
	Tokens     *TokenBundle
}

// verified claims for a bearer token introspected against the provider
type TokenInfo struct {
	Subject    string
	Username   string
	Attributes map[string]string
}
