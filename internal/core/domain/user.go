package domain

// UserRole gates destructive admin routes.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User is an authenticated API caller.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"` // unique
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}
