package checkout

import (
	"errors"
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/models"
	"storefront/internal/order"
)

func populated(price float64, quantity int) order.PopulatedItem {
	return order.PopulatedItem{
		Product: models.Product{
			ID:          primitive.NewObjectID(),
			Title:       "Item",
			Description: "A thing",
			Price:       price,
		},
		Quantity: quantity,
	}
}

func TestBuildLineItemsEmptyCart(t *testing.T) {
	_, err := BuildLineItems(nil)

	var empty domain.EmptyCartError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyCartError, got %v", err)
	}
}

func TestBuildLineItemsConvertsToMinorUnits(t *testing.T) {
	lines, err := BuildLineItems([]order.PopulatedItem{populated(19.99, 2)})
	if err != nil {
		t.Fatalf("BuildLineItems returned error: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].UnitAmountMinorUnits != 1999 {
		t.Fatalf("expected 1999 minor units, got %d", lines[0].UnitAmountMinorUnits)
	}
	if lines[0].Quantity != 2 || lines[0].Currency != Currency {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestBuildLineItemsRoundsHalfUp(t *testing.T) {
	lines, err := BuildLineItems([]order.PopulatedItem{populated(10.005, 1)})
	if err != nil {
		t.Fatalf("BuildLineItems returned error: %v", err)
	}
	if lines[0].UnitAmountMinorUnits != 1001 {
		t.Fatalf("expected 1000.5 cents to round up to 1001, got %d", lines[0].UnitAmountMinorUnits)
	}
}

func TestCartTotalSumsInMajorUnits(t *testing.T) {
	total := CartTotal([]order.PopulatedItem{populated(19.99, 2)})

	if math.Abs(total-39.98) > 1e-9 {
		t.Fatalf("expected display total 39.98, got %v", total)
	}
}

func TestCartTotalAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into the displayed total.
	items := []order.PopulatedItem{populated(0.1, 1), populated(0.2, 1)}

	if total := CartTotal(items); total != 0.3 {
		t.Fatalf("expected 0.3, got %v", total)
	}
}
