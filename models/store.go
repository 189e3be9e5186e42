package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a merchant whose coupons are listed on the platform.
// TotalCoupons is set by the admin on create/update and is never derived from the coupons collection.
type Store struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Logo         string             `json:"logo" bson:"logo"`
	TotalCoupons int                `json:"totalCoupons" bson:"totalCoupons"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NamedRef is a referenced document reduced to its id and name.
type NamedRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}
