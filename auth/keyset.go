package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JWKS represents the JSON Web Key Set published by the issuer
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a JSON Web Key
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg,omitempty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Find returns the first key whose kid equals kid, in listed order
func (s *JWKS) Find(kid string) (*JWK, bool) {
	for i := range s.Keys {
		if s.Keys[i].Kid == kid {
			return &s.Keys[i], true
		}
	}
	return nil, false
}

// RSAPublicKey converts the modulus and exponent of the key to an RSA public key
func (k *JWK) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}

	nBytes, err := decodeSegment(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := decodeSegment(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	if len(nBytes) == 0 || len(eBytes) == 0 {
		return nil, errors.New("empty modulus or exponent")
	}

	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() < 2 || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("invalid exponent %s", e)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e.Int64()),
	}, nil
}

// decodeSegment decodes base64url with or without padding
func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// KeySetFetcher retrieves the current signing keys of the trusted issuer
type KeySetFetcher interface {
	FetchKeySet(ctx context.Context) (*JWKS, error)
}

// JWKSURL returns the well-known key set location for an issuer host
func JWKSURL(issuerHost string) string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", issuerHost)
}

// FetcherConfig holds configuration for HTTPKeySetFetcher
type FetcherConfig struct {
	IssuerHost  string
	JWKSURL     string // overrides the URL derived from IssuerHost when set
	HTTPTimeout time.Duration
}

// HTTPKeySetFetcher downloads the key set on every call
type HTTPKeySetFetcher struct {
	jwksURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPKeySetFetcher creates a fetcher for the issuer's published key set
func NewHTTPKeySetFetcher(cfg FetcherConfig, logger *zap.Logger) *HTTPKeySetFetcher {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 5 * time.Second
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = JWKSURL(cfg.IssuerHost)
	}

	return &HTTPKeySetFetcher{
		jwksURL: jwksURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// URL returns the location the fetcher reads from
func (f *HTTPKeySetFetcher) URL() string {
	return f.jwksURL
}

// FetchKeySet fetches the JWKS from the issuer
func (f *HTTPKeySetFetcher) FetchKeySet(ctx context.Context) (*JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.jwksURL, nil)
	if err != nil {
		return nil, newError(KindKeySetUnavailable, "Unable to fetch signing keys.", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("jwks request failed", zap.String("url", f.jwksURL), zap.Error(err))
		return nil, newError(KindKeySetUnavailable, "Unable to fetch signing keys.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("jwks request returned unexpected status",
			zap.String("url", f.jwksURL),
			zap.Int("status", resp.StatusCode))
		return nil, newError(KindKeySetUnavailable, "Unable to fetch signing keys.",
			fmt.Errorf("status code %d", resp.StatusCode))
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, newError(KindKeySetUnavailable, "Signing key set is malformed.", err)
	}
	if jwks.Keys == nil {
		return nil, newError(KindKeySetUnavailable, "Signing key set is malformed.",
			errors.New(`missing "keys" array`))
	}

	f.logger.Debug("jwks fetched", zap.Int("keys", len(jwks.Keys)))
	return &jwks, nil
}

// CachingKeySetFetcher keeps the last fetched key set for a fixed TTL
type CachingKeySetFetcher struct {
	next KeySetFetcher
	ttl  time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	cached    *JWKS
	expiresAt time.Time
}

// NewCachingKeySetFetcher wraps next with a TTL cache
func NewCachingKeySetFetcher(next KeySetFetcher, ttl time.Duration) *CachingKeySetFetcher {
	return &CachingKeySetFetcher{
		next: next,
		ttl:  ttl,
		now:  time.Now,
	}
}

// FetchKeySet returns the cached key set while it is fresh, fetching otherwise
func (c *CachingKeySetFetcher) FetchKeySet(ctx context.Context) (*JWKS, error) {
	jwks, _, err := c.fetchKeySet(ctx)
	return jwks, err
}

func (c *CachingKeySetFetcher) fetchKeySet(ctx context.Context) (*JWKS, bool, error) {
	c.mu.RLock()
	if c.cached != nil && c.now().Before(c.expiresAt) {
		defer c.mu.RUnlock()
		return c.cached, true, nil
	}
	c.mu.RUnlock()

	jwks, err := c.Refresh(ctx)
	return jwks, false, err
}

// Refresh fetches the key set unconditionally and replaces the cached copy
func (c *CachingKeySetFetcher) Refresh(ctx context.Context) (*JWKS, error) {
	jwks, err := c.next.FetchKeySet(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = jwks
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()

	return jwks, nil
}

// Invalidate drops the cached key set
func (c *CachingKeySetFetcher) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.expiresAt = time.Time{}
}
