package middleware

import "context"

const userIDKey = contextKey("userID")
const userRoleKey = contextKey("userRole")

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromCtx retrieves the authenticated user's role from the context.
func GetUserRoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
