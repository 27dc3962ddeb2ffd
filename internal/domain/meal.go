package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is a chef-owned catalog entry that clients browse and order from.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ChefName    string             `bson:"chefName" json:"chefName"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Ingredients []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Diet        string             `bson:"diet,omitempty" json:"diet,omitempty"`
	ImagePath   string             `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	Coordinates *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	// DistanceKm is computed per viewer at read time, never stored.
	DistanceKm *float64 `bson:"-" json:"distance,omitempty"`
}
