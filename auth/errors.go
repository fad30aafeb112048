package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies why an authorization attempt failed
type Kind string

const (
	KindMissingHeader           Kind = "missing_header"
	KindMalformedHeader         Kind = "malformed_header"
	KindMalformedToken          Kind = "malformed_token"
	KindKeySetUnavailable       Kind = "key_set_unavailable"
	KindSigningKeyNotFound      Kind = "signing_key_not_found"
	KindTokenExpired            Kind = "token_expired"
	KindInvalidClaims           Kind = "invalid_claims"
	KindTokenUnparseable        Kind = "token_unparseable"
	KindPermissionsClaimMissing Kind = "permissions_claim_missing"
	KindPermissionDenied        Kind = "permission_denied"
)

// Error is a tagged authorization failure carrying the HTTP status and the
// problem title/detail the boundary should render.
type Error struct {
	Kind   Kind
	Status int
	Title  string
	Detail string
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// newError builds an Error with the status and title registered for kind
func newError(kind Kind, detail string, err error) *Error {
	spec := kinds[kind]
	return &Error{
		Kind:   kind,
		Status: spec.status,
		Title:  spec.title,
		Detail: detail,
		Err:    err,
	}
}

type kindSpec struct {
	status int
	title  string
}

var kinds = map[Kind]kindSpec{
	KindMissingHeader:           {http.StatusUnauthorized, "authorization_header_missing"},
	KindMalformedHeader:         {http.StatusUnauthorized, "invalid_header"},
	KindMalformedToken:          {http.StatusUnauthorized, "invalid_header"},
	KindKeySetUnavailable:       {http.StatusUnauthorized, "invalid_header"},
	KindSigningKeyNotFound:      {http.StatusBadRequest, "invalid_header"},
	KindTokenExpired:            {http.StatusUnauthorized, "token_expired"},
	KindInvalidClaims:           {http.StatusUnauthorized, "invalid_claims"},
	KindTokenUnparseable:        {http.StatusBadRequest, "invalid_header"},
	KindPermissionsClaimMissing: {http.StatusBadRequest, "invalid_claims"},
	KindPermissionDenied:        {http.StatusUnauthorized, "unauthorized"},
}

// Sentinels for errors.Is comparisons against a kind
var (
	ErrMissingHeader           = &Error{Kind: KindMissingHeader}
	ErrMalformedHeader         = &Error{Kind: KindMalformedHeader}
	ErrMalformedToken          = &Error{Kind: KindMalformedToken}
	ErrKeySetUnavailable       = &Error{Kind: KindKeySetUnavailable}
	ErrSigningKeyNotFound      = &Error{Kind: KindSigningKeyNotFound}
	ErrTokenExpired            = &Error{Kind: KindTokenExpired}
	ErrInvalidClaims           = &Error{Kind: KindInvalidClaims}
	ErrTokenUnparseable        = &Error{Kind: KindTokenUnparseable}
	ErrPermissionsClaimMissing = &Error{Kind: KindPermissionsClaimMissing}
	ErrPermissionDenied        = &Error{Kind: KindPermissionDenied}
)

// AsError extracts an *Error from err's chain
func AsError(err error) (*Error, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// KindOf returns the Kind of an authorization error, or empty string if err is not one
func KindOf(err error) Kind {
	if authErr, ok := AsError(err); ok {
		return authErr.Kind
	}
	return ""
}

// IsKind reports whether err is an authorization error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
