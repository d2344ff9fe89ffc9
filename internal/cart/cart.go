// Package cart holds the pure cart operations. Every function returns a new
// cart value and leaves its input untouched; persisting the result is the
// caller's job and must happen before the operation counts as complete.
package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// Add puts one unit of the product into the cart. If the product is already
// present its quantity is incremented instead of adding a duplicate entry.
// Existing item order is preserved; new items append at the end. The caller
// must have resolved the product against the catalog first.
func Add(c models.Cart, product models.Product) models.Cart {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity++
			return models.Cart{Items: items}
		}
	}

	items = append(items, models.CartItem{ProductID: product.ID, Quantity: 1})
	return models.Cart{Items: items}
}

// Remove drops the entry for the given product id. Removing an id that is
// not in the cart is a no-op, not an error.
func Remove(c models.Cart, productID primitive.ObjectID) models.Cart {
	items := make([]models.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID == productID {
			continue
		}
		items = append(items, item)
	}
	return models.Cart{Items: items}
}

// Clear returns an empty cart, used after a successful checkout.
func Clear() models.Cart {
	return models.Cart{Items: []models.CartItem{}}
}
