package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	ImageKey    string             `bson:"imageKey" json:"imageKey"`
	OwnerUserID primitive.ObjectID `bson:"ownerUserId" json:"ownerUserId"`
	// ImageData carries the base64 image payload on seller listings. It is
	// filled from object storage at read time and never persisted.
	ImageData string    `bson:"-" json:"imageData,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
