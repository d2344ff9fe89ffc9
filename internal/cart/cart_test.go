package cart

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestAddNewProductAppendsAtEnd(t *testing.T) {
	first := models.Product{ID: primitive.NewObjectID()}
	second := models.Product{ID: primitive.NewObjectID()}

	c := Add(models.Cart{}, first)
	c = Add(c, second)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
	if c.Items[0].ProductID != first.ID || c.Items[1].ProductID != second.ID {
		t.Fatalf("expected insertion order preserved, got %+v", c.Items)
	}
	if c.Items[0].Quantity != 1 || c.Items[1].Quantity != 1 {
		t.Fatalf("expected quantity 1 for fresh items, got %+v", c.Items)
	}
}

func TestAddExistingProductIncrementsQuantity(t *testing.T) {
	product := models.Product{ID: primitive.NewObjectID()}

	c := Add(Add(models.Cart{}, product), product)

	if len(c.Items) != 1 {
		t.Fatalf("expected a single entry for the product, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
}

func TestAddDoesNotMutateInput(t *testing.T) {
	product := models.Product{ID: primitive.NewObjectID()}
	original := models.Cart{Items: []models.CartItem{{ProductID: product.ID, Quantity: 1}}}

	_ = Add(original, product)

	if original.Items[0].Quantity != 1 {
		t.Fatalf("input cart was mutated: %+v", original.Items)
	}
}

func TestRemoveDropsMatchingEntry(t *testing.T) {
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()
	c := models.Cart{Items: []models.CartItem{
		{ProductID: keep, Quantity: 2},
		{ProductID: drop, Quantity: 1},
	}}

	got := Remove(c, drop)

	if len(got.Items) != 1 || got.Items[0].ProductID != keep {
		t.Fatalf("expected only %s to remain, got %+v", keep.Hex(), got.Items)
	}
}

func TestRemoveAbsentProductIsIdentity(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 3},
	}}

	got := Remove(c, primitive.NewObjectID())

	if len(got.Items) != 1 || got.Items[0] != c.Items[0] {
		t.Fatalf("expected cart unchanged, got %+v", got.Items)
	}
}

func TestClearAlwaysEmpties(t *testing.T) {
	got := Clear()
	if got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("expected empty non-nil item list, got %+v", got.Items)
	}
}
