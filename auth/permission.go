package auth

import "slices"

// CheckPermission verifies that claims grant the required permission.
// Membership is exact and case-sensitive. An empty requirement passes
// once the permissions field exists.
func CheckPermission(required string, claims *Claims) error {
	if claims == nil || !claims.HasPermissionsClaim() {
		return newError(KindPermissionsClaimMissing, "Permissions not included in JWT.", nil)
	}
	if required == "" {
		return nil
	}
	if !slices.Contains(claims.Permissions, required) {
		return newError(KindPermissionDenied, "Permission not found.", nil)
	}
	return nil
}
