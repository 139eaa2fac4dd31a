package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the denormalized projection of a user kept in the "profiles"
// collection. It backs the signup email probe and the profile view without
// exposing the credential-bearing user document. Writes to it are best-effort:
// a failed profile write never fails the primary operation.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileFromUser builds the projection written alongside user mutations.
func ProfileFromUser(u *User) Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		UpdatedAt: time.Now(),
	}
}
