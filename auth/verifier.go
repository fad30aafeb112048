package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// VerifierConfig is the trust configuration fixed at start-up
type VerifierConfig struct {
	IssuerHost string // e.g. "tenant.eu.auth0.com"
	Audience   string
	Algorithm  string // RS256, RS384 or RS512
}

// Issuer returns the expected iss claim for the configured host
func (c VerifierConfig) Issuer() string {
	return "https://" + c.IssuerHost + "/"
}

// Validate checks the configuration
func (c VerifierConfig) Validate() error {
	if c.IssuerHost == "" {
		return errors.New("issuer host is required")
	}
	if strings.Contains(c.IssuerHost, "/") {
		return fmt.Errorf("issuer host %q must not contain a scheme or path", c.IssuerHost)
	}
	if c.Audience == "" {
		return errors.New("audience is required")
	}
	if _, ok := jwt.GetSigningMethod(c.Algorithm).(*jwt.SigningMethodRSA); !ok {
		return fmt.Errorf("algorithm %q is not a supported RSA signing method", c.Algorithm)
	}
	return nil
}

// keyRefresher is implemented by fetchers that cache and can be forced to refetch.
// fetchKeySet reports whether the set was served from the cache.
type keyRefresher interface {
	fetchKeySet(ctx context.Context) (jwks *JWKS, cached bool, err error)
	Refresh(ctx context.Context) (*JWKS, error)
}

// Verifier validates access tokens against the issuer's published keys
type Verifier struct {
	config VerifierConfig
	keys   KeySetFetcher
	parser *jwt.Parser
	logger *zap.Logger
}

// NewVerifier creates a verifier for the given configuration
func NewVerifier(cfg VerifierConfig, keys KeySetFetcher, logger *zap.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid verifier config: %w", err)
	}
	if keys == nil {
		return nil, errors.New("key set fetcher is required")
	}

	return &Verifier{
		config: cfg,
		keys:   keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{cfg.Algorithm}),
			jwt.WithAudience(cfg.Audience),
			jwt.WithIssuer(cfg.Issuer()),
		),
		logger: logger,
	}, nil
}

// Config returns the verifier's trust configuration
func (v *Verifier) Config() VerifierConfig {
	return v.config
}

// Verify checks the token's signature and claims and returns the decoded claims
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	kid, err := v.keyID(token)
	if err != nil {
		return nil, err
	}

	jwks, cached, err := v.fetchKeys(ctx)
	if err != nil {
		return nil, err
	}

	key, ok := jwks.Find(kid)
	if !ok {
		// A cached set may predate a key rotation
		if r, canRefresh := v.keys.(keyRefresher); canRefresh && cached {
			v.logger.Debug("signing key not in cached set, refreshing", zap.String("kid", kid))
			if jwks, err = r.Refresh(ctx); err != nil {
				return nil, err
			}
			key, ok = jwks.Find(kid)
		}
		if !ok {
			return nil, newError(KindSigningKeyNotFound, "Unable to find the appropriate key.", nil)
		}
	}

	publicKey, err := key.RSAPublicKey()
	if err != nil {
		v.logger.Warn("signing key is unusable", zap.String("kid", kid), zap.Error(err))
		return nil, newError(KindKeySetUnavailable, "Signing key is unusable.", err)
	}

	claims := &Claims{}
	_, err = v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	return claims, nil
}

func (v *Verifier) fetchKeys(ctx context.Context) (*JWKS, bool, error) {
	if r, ok := v.keys.(keyRefresher); ok {
		return r.fetchKeySet(ctx)
	}
	jwks, err := v.keys.FetchKeySet(ctx)
	return jwks, false, err
}

// keyID reads the kid from the unverified header. Only the first segment is
// decoded, so the payload has no bearing on the outcome.
func (v *Verifier) keyID(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", newError(KindTokenUnparseable, "Unable to parse authentication token.", jwt.ErrTokenMalformed)
	}

	raw, err := v.parser.DecodeSegment(parts[0])
	if err != nil {
		return "", newError(KindTokenUnparseable, "Unable to parse authentication token.", err)
	}
	var header map[string]interface{}
	if err := json.Unmarshal(raw, &header); err != nil {
		return "", newError(KindTokenUnparseable, "Unable to parse authentication token.", err)
	}

	kid, ok := header["kid"].(string)
	if !ok {
		return "", newError(KindMalformedToken, "Authorization malformed.", nil)
	}
	return kid, nil
}

// mapParseError translates jwt verification failures into authorization errors.
// Order matters: an expired token also matches ErrTokenInvalidClaims.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(KindTokenExpired, "Token expired.", err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return newError(KindInvalidClaims, "Incorrect claims. Please, check the audience and issuer.", err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return newError(KindTokenUnparseable, "Unable to parse authentication token.", err)
	default:
		return fmt.Errorf("verify token: %w", err)
	}
}
