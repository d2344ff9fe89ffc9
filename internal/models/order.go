package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine pairs a full point-in-time copy of the product with the ordered
// quantity. The copy is what keeps historical orders stable: later edits to
// the catalog record never reach back into an order.
type OrderLine struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Order is the immutable record created at checkout success.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Products  []OrderLine        `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
