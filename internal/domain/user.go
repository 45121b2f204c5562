package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered athlete. Admins can manage other accounts.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`

	// --- Profile ---
	Gender      string `bson:"gender,omitempty" json:"gender,omitempty"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`
	DateOfBirth string `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // YYYY-MM-DD

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Session is the logged-in principal as seen by a single request.
type Session struct {
	UserID      primitive.ObjectID
	Email       string
	DisplayName string
	IsAdmin     bool
}

// DefaultDisplayName falls back to the local part of the email when no name was given.
func DefaultDisplayName(name, email string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
