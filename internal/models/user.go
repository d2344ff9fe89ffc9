package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one entry of a user's embedded cart. Items are unique by
// product id; adding a product that is already present bumps its quantity.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is embedded in the user document. It is never shared between users
// and never referenced by id.
type Cart struct {
	Items []CartItem `bson:"items" json:"items"`
}

// User represents the application user account with its embedded cart.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"passwordHash" json:"-"`
	ResetTokenHash   string             `bson:"resetTokenHash,omitempty" json:"-"`
	ResetTokenExpiry *time.Time         `bson:"resetTokenExpiry,omitempty" json:"-"`
	Cart             Cart               `bson:"cart" json:"cart"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
