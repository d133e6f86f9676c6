package types

import "time"

// Roles a user may hold, ordered from most to least privileged.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// Experience levels assigned by the onboarding quiz.
const (
	LevelBeginner = "beginner"
	LevelNovice   = "novice"
	LevelAdvanced = "advanced"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Email is the user's email address. It is optional, but unique
	// across accounts when set.
	Email string `json:"email,omitempty" db:"email"`

	// Role indicates the user's authorization level within the system.
	// One of "super_admin", "admin" or "user".
	Role string `json:"role" db:"role"`

	// ExperienceLevel is the Linux experience level derived from the
	// onboarding quiz. One of "beginner", "novice" or "advanced".
	ExperienceLevel string `json:"experience_level" db:"experience_level"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// ValidExperienceLevel reports whether level is one of the known levels.
func ValidExperienceLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelNovice, LevelAdvanced:
		return true
	}
	return false
}
