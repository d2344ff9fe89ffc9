// Package order converts a populated cart into an immutable order record.
package order

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/models"
)

// PopulatedItem is a cart entry whose product reference has been resolved to
// the current catalog record.
type PopulatedItem struct {
	Product  models.Product
	Quantity int
}

// ProductFinder resolves a product id to its current catalog record.
type ProductFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
}

// Inserter persists an order and returns it with its assigned id.
type Inserter interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
}

// CartSaver persists a user's embedded cart.
type CartSaver interface {
	SaveCart(ctx context.Context, userID primitive.ObjectID, c models.Cart) error
}

// Populate resolves every cart item against the catalog. A product that has
// vanished since it was added to the cart fails the whole population with a
// ValidationError; carts are only checked out against live records.
func Populate(ctx context.Context, products ProductFinder, c models.Cart) ([]PopulatedItem, error) {
	items := make([]PopulatedItem, 0, len(c.Items))
	for _, item := range c.Items {
		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			var notFound domain.NotFoundError
			if errors.As(err, &notFound) {
				return nil, domain.ValidationError{
					Field:  "cart",
					Reason: "product no longer exists: " + item.ProductID.Hex(),
				}
			}
			return nil, err
		}
		items = append(items, PopulatedItem{Product: product, Quantity: item.Quantity})
	}
	return items, nil
}

// Build assembles the order record from populated items. Each product is
// copied into the order by value; later catalog edits must never alter an
// order that has already been created.
func Build(user models.User, items []PopulatedItem) (models.Order, error) {
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		if item.Product.ID.IsZero() {
			return models.Order{}, domain.ValidationError{Field: "cart", Reason: "unresolved product in cart"}
		}
		lines = append(lines, models.OrderLine{Product: item.Product, Quantity: item.Quantity})
	}

	return models.Order{
		UserEmail: user.Email,
		UserID:    user.ID,
		Products:  lines,
		CreatedAt: time.Now(),
	}, nil
}

// Finalize persists the order, then clears the user's cart. The cart is only
// touched after the insert succeeded; a failed insert leaves the cart intact
// so the purchase intent is not lost.
func Finalize(ctx context.Context, orders Inserter, carts CartSaver, user models.User, o models.Order) (models.Order, error) {
	saved, err := orders.Insert(ctx, o)
	if err != nil {
		return models.Order{}, err
	}

	if err := carts.SaveCart(ctx, user.ID, cart.Clear()); err != nil {
		return saved, err
	}
	return saved, nil
}
