package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// computes the secret hash Cognito requires from confidential clients:
// base64(HMAC-SHA256(client_secret, username + client_id)). Returns "" when
// no client secret is configured, which is a valid public-client setup.
func (g *Gateway) secretHash(username string) string {
	if g.clientSecret == "" {
		return ""
	}

	mac := hmac.New(sha256.New, []byte(g.clientSecret))
	mac.Write([]byte(username + g.clientID))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
