package middleware

import (
	"context"
	"net/http"

	"github.com/upb/casting-agency/auth"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// TokenVerifier defines the interface for verifying access tokens
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// ProtectedFunc is an operation that runs only after authorization succeeded.
// It receives the verified claims ahead of the request.
type ProtectedFunc func(claims *auth.Claims, w http.ResponseWriter, r *http.Request)

// Guard wraps operations with bearer-token authorization
type Guard struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewGuard creates a new Guard
func NewGuard(verifier TokenVerifier, logger *zap.Logger) *Guard {
	return &Guard{
		verifier: verifier,
		logger:   logger,
	}
}

// Require returns a handler that extracts and verifies the bearer token,
// checks that it grants permission and then runs op. The first failing step
// writes its error and nothing after it runs.
func (g *Guard) Require(permission string, op ProtectedFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token, err := auth.ExtractRequestToken(r)
		if err != nil {
			g.reject(w, r, permission, err)
			return
		}

		claims, err := g.verifier.Verify(ctx, token)
		if err != nil {
			g.reject(w, r, permission, err)
			return
		}

		if err := auth.CheckPermission(permission, claims); err != nil {
			g.reject(w, r, permission, err)
			return
		}

		g.logger.Debug("authorization granted",
			zap.String("request_id", requestID),
			zap.String("sub", claims.RegisteredClaims.Subject),
			zap.String("required_permission", permission))

		op(claims, w, r.WithContext(WithClaims(ctx, claims)))
	})
}

// RequireFunc is Require for routers that register http.HandlerFunc values
func (g *Guard) RequireFunc(permission string, op ProtectedFunc) http.HandlerFunc {
	return g.Require(permission, op).ServeHTTP
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, permission string, err error) {
	requestID := GetRequestIDFromContext(r.Context())

	if authErr, ok := auth.AsError(err); ok {
		g.logger.Warn("authorization failed",
			zap.String("request_id", requestID),
			zap.String("kind", string(authErr.Kind)),
			zap.String("required_permission", permission),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		WriteAuthError(w, r, authErr, g.logger)
		return
	}

	g.logger.Error("token verification failed unexpectedly",
		zap.String("request_id", requestID),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	if err := utils.WriteInternalServerError(w, r, "An internal error occurred."); err != nil {
		g.logger.Error("failed to write internal error response", zap.Error(err))
	}
}

// WriteAuthError renders an authorization error as a problem response
func WriteAuthError(w http.ResponseWriter, r *http.Request, authErr *auth.Error, logger *zap.Logger) {
	if err := utils.WriteProblem(w, authErr.Status, authErr.Title, authErr.Detail, r.URL.Path); err != nil {
		logger.Error("failed to write authorization error response", zap.Error(err))
	}
}
