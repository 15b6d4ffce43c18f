package model

import "time"

// Role names stored in the users.role column. CREATOR accounts may publish
// recipes, ADMIN accounts bypass ownership checks everywhere.
const (
	RoleUser    = "USER"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleCreator || s == RoleAdmin
}

// User mirrors the `users` table. The password hash never leaves the API.
type User struct {
	ID           uint64    `json:"id"`            // users.id
	Username     string    `json:"username"`      // users.username (unique)
	Email        string    `json:"email"`         // users.email (unique)
	PasswordHash string    `json:"-"`             // users.password_hash (bcrypt)
	Role         string    `json:"role"`          // users.role
	CreatedAt    time.Time `json:"created_at"`    // users.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is stored, never the raw token.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
