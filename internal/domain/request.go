package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the integer-coded order status. The lifecycle manager
// only enforces the 0..5 range and actor scoping; any in-range value may be
// set by an authorized party, in any order.
type RequestStatus int

const (
	RequestStatusPlaced RequestStatus = iota
	RequestStatusAccepted
	RequestStatusPreparing
	RequestStatusReady
	RequestStatusCompleted
	RequestStatusCancelled
)

// InRange reports whether the status is one of the known codes.
func (s RequestStatus) InRange() bool {
	return s >= RequestStatusPlaced && s <= RequestStatusCancelled
}

// Request is a client's order to a chef. Exactly one client (UserName) and
// one chef (ChefName) own a request; only those two identities may read or
// mutate it.
type Request struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserName      string             `bson:"userName" json:"userName"`
	ChefName      string             `bson:"chefName" json:"chefName"`
	MealTitle     string             `bson:"mealTitle" json:"mealTitle"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	RequestStatus RequestStatus      `bson:"requestStatus" json:"requestStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
