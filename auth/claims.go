package auth

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the verified payload of an access token
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`

	permissionsPresent bool
}

// UnmarshalJSON decodes the token payload and records whether the
// permissions field was present. A null value counts as absent.
func (c *Claims) UnmarshalJSON(data []byte) error {
	type plain Claims
	aux := struct {
		*plain
		Permissions *[]string `json:"permissions"`
	}{
		plain: (*plain)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.permissionsPresent = aux.Permissions != nil
	if aux.Permissions != nil {
		c.Permissions = *aux.Permissions
	} else {
		c.Permissions = nil
	}
	return nil
}

// HasPermissionsClaim reports whether the token carried a permissions field
func (c *Claims) HasPermissionsClaim() bool {
	return c.permissionsPresent
}

// WithPermissions marks the permissions field as present with the given values.
// Used when claims are built in-process rather than decoded from a token.
func (c *Claims) WithPermissions(permissions ...string) *Claims {
	c.Permissions = permissions
	if c.Permissions == nil {
		c.Permissions = []string{}
	}
	c.permissionsPresent = true
	return c
}
