package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeClaims(t *testing.T, payload string) *Claims {
	t.Helper()
	var c Claims
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	return &c
}

func TestClaims_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantPresent bool
		wantPerms   []string
	}{
		{"absent", `{"sub":"u1"}`, false, nil},
		{"null", `{"sub":"u1","permissions":null}`, false, nil},
		{"empty", `{"sub":"u1","permissions":[]}`, true, []string{}},
		{"values keep order", `{"sub":"u1","permissions":["b","a"]}`, true, []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := decodeClaims(t, tt.payload)
			assert.Equal(t, tt.wantPresent, c.HasPermissionsClaim())
			assert.Equal(t, tt.wantPerms, c.Permissions)
			assert.Equal(t, "u1", c.RegisteredClaims.Subject)
		})
	}
}

func TestClaims_UnmarshalJSON_RegisteredClaims(t *testing.T) {
	c := decodeClaims(t, `{"iss":"https://h/","aud":["a","b"],"exp":1700000000,"permissions":["x"]}`)
	assert.Equal(t, "https://h/", c.Issuer)
	assert.Equal(t, []string{"a", "b"}, []string(c.Audience))
	require.NotNil(t, c.ExpiresAt)
	assert.Equal(t, int64(1700000000), c.ExpiresAt.Unix())
}

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name     string
		required string
		claims   *Claims
		wantKind Kind
	}{
		{
			name:     "member",
			required: "get:movies",
			claims:   decodeClaims(t, `{"permissions":["get:movies","post:movies"]}`),
		},
		{
			name:     "not a member",
			required: "delete:movies",
			claims:   decodeClaims(t, `{"permissions":["get:movies"]}`),
			wantKind: KindPermissionDenied,
		},
		{
			name:     "case sensitive",
			required: "get:movies",
			claims:   decodeClaims(t, `{"permissions":["GET:movies"]}`),
			wantKind: KindPermissionDenied,
		},
		{
			name:     "no prefix matching",
			required: "get:movies",
			claims:   decodeClaims(t, `{"permissions":["get:movies:all","get"]}`),
			wantKind: KindPermissionDenied,
		},
		{
			name:     "missing field",
			required: "get:movies",
			claims:   decodeClaims(t, `{"sub":"u"}`),
			wantKind: KindPermissionsClaimMissing,
		},
		{
			name:     "missing field with empty requirement",
			required: "",
			claims:   decodeClaims(t, `{"sub":"u"}`),
			wantKind: KindPermissionsClaimMissing,
		},
		{
			name:     "empty requirement with empty list",
			required: "",
			claims:   decodeClaims(t, `{"permissions":[]}`),
		},
		{
			name:     "nil claims",
			required: "get:movies",
			claims:   nil,
			wantKind: KindPermissionsClaimMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPermission(tt.required, tt.claims)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestCheckPermission_Statuses(t *testing.T) {
	err := CheckPermission("get:movies", decodeClaims(t, `{}`))
	authErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 400, authErr.Status)
	assert.Equal(t, "invalid_claims", authErr.Title)
	assert.Equal(t, "Permissions not included in JWT.", authErr.Detail)

	err = CheckPermission("get:movies", decodeClaims(t, `{"permissions":[]}`))
	authErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, 401, authErr.Status)
	assert.Equal(t, "unauthorized", authErr.Title)
	assert.Equal(t, "Permission not found.", authErr.Detail)
}

func TestCheckPermission_Idempotent(t *testing.T) {
	claims := decodeClaims(t, `{"permissions":["get:actors"]}`)
	for i := 0; i < 3; i++ {
		assert.NoError(t, CheckPermission("get:actors", claims))
		assert.ErrorIs(t, CheckPermission("post:actors", claims), ErrPermissionDenied)
	}
	assert.Equal(t, []string{"get:actors"}, claims.Permissions)
}

func TestClaims_WithPermissions(t *testing.T) {
	c := (&Claims{}).WithPermissions()
	assert.True(t, c.HasPermissionsClaim())
	assert.NoError(t, CheckPermission("", c))
	assert.ErrorIs(t, CheckPermission("get:roles", c), ErrPermissionDenied)
}
