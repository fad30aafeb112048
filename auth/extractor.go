package auth

import (
	"net/http"
	"strings"
)

const bearerScheme = "bearer"

// ExtractToken returns the credential from an Authorization header value of
// the form "Bearer <token>". The token is returned exactly as it appears
// after the whitespace split.
func ExtractToken(header string) (string, error) {
	if header == "" {
		return "", newError(KindMissingHeader, "Authorization header is expected.", nil)
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 0 || strings.ToLower(parts[0]) != bearerScheme:
		return "", newError(KindMalformedHeader, `Authorization header must start with "Bearer".`, nil)
	case len(parts) == 1:
		return "", newError(KindMalformedHeader, "Token not found.", nil)
	case len(parts) > 2:
		return "", newError(KindMalformedHeader, "Authorization header must be bearer token.", nil)
	}

	return parts[1], nil
}

// ExtractRequestToken reads the Authorization header of r and extracts its bearer token
func ExtractRequestToken(r *http.Request) (string, error) {
	return ExtractToken(r.Header.Get("Authorization"))
}
