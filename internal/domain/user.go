package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies which side of the marketplace a user is on.
type Role string

const (
	RoleClient Role = "client"
	RoleChef   Role = "chef"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleChef
}

// Coordinates is a geolocation point attached to users and meals.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// User is the domain model for marketplace accounts. The userName is the
// unique, immutable key; the role is fixed at signup. SessionToken holds the
// single currently valid session token and is overwritten on every login.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserName           string             `bson:"userName" json:"userName"`
	PasswordHash       string             `bson:"passwordHash" json:"-"`
	Salt               string             `bson:"salt" json:"-"`
	Role               Role               `bson:"role" json:"role"`
	SessionToken       string             `bson:"sessionToken,omitempty" json:"-"`
	Coordinates        *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Bio                string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicturePath string             `bson:"profilePicturePath,omitempty" json:"profilePicturePath,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"-"`
}
