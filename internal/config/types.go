package config

type Config struct {
	DatabaseURL         string
	AWSRegion           string
	CognitoUserPoolID   string
	CognitoClientID     string
	CognitoClientSecret string
	GoogleClientID      string
	Environment         string
}
