package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// RoleUser is assigned to every identity on registration.
	RoleUser = "user"
	// RoleAdmin unlocks user management and the admin dashboard.
	RoleAdmin = "admin"
)

// User represents a registered identity in the users collection.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Role         string             `json:"role" bson:"role"`
	PasswordHash string             `json:"-" bson:"passwordHash,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	Extra        Fields             `json:"-" bson:",inline"`
}

var userReserved = []string{"_id", "email", "role", "password", "passwordHash", "createdAt"}

// NewUser builds a user with the default role from a registration payload.
// The plain password, if any, is left to the caller to hash.
func NewUser(doc Fields, now time.Time) *User {
	return &User{
		Email:     strings.TrimSpace(doc.String("email")),
		Role:      RoleUser,
		CreatedAt: now,
		Extra:     doc.Without(userReserved...),
	}
}

// IsValidRole reports whether role is one the API knows about.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type userJSON User

// MarshalJSON flattens client supplied attributes next to the stored fields.
func (u User) MarshalJSON() ([]byte, error) {
	return mergeJSON(userJSON(u), u.Extra)
}
