package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	awsRegion := os.Getenv("AWS_REGION")
	userPoolID := os.Getenv("COGNITO_USER_POOL_ID")
	clientID := os.Getenv("COGNITO_CLIENT_ID")
	clientSecret := os.Getenv("COGNITO_CLIENT_SECRET")
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if awsRegion == "" {
		awsRegion = "us-east-1"
	}

	if userPoolID == "" {
		return nil, fmt.Errorf("COGNITO_USER_POOL_ID environment variable is required")
	}

	if clientID == "" {
		return nil, fmt.Errorf("COGNITO_CLIENT_ID environment variable is required")
	}

	// COGNITO_CLIENT_SECRET is optional: public app clients have no secret,
	// confidential clients require the secret hash on every credential call

	if googleClientID == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		DatabaseURL:         databaseURL,
		AWSRegion:           awsRegion,
		CognitoUserPoolID:   userPoolID,
		CognitoClientID:     clientID,
		CognitoClientSecret: clientSecret,
		GoogleClientID:      googleClientID,
		Environment:         environment,
	}, nil
}
