package order

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/models"
)

type fakeFinder struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeFinder) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return models.Product{}, domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	return product, nil
}

type fakeInserter struct {
	inserted []models.Order
	err      error
}

func (f *fakeInserter) Insert(_ context.Context, o models.Order) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	o.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, o)
	return o, nil
}

type fakeCartSaver struct {
	saved *models.Cart
}

func (f *fakeCartSaver) SaveCart(_ context.Context, _ primitive.ObjectID, c models.Cart) error {
	f.saved = &c
	return nil
}

func TestPopulateResolvesEveryItem(t *testing.T) {
	first := models.Product{ID: primitive.NewObjectID(), Title: "Book", Price: 12.5}
	second := models.Product{ID: primitive.NewObjectID(), Title: "Pen", Price: 1.2}
	finder := &fakeFinder{products: map[primitive.ObjectID]models.Product{
		first.ID:  first,
		second.ID: second,
	}}
	c := models.Cart{Items: []models.CartItem{
		{ProductID: first.ID, Quantity: 2},
		{ProductID: second.ID, Quantity: 1},
	}}

	items, err := Populate(context.Background(), finder, c)
	if err != nil {
		t.Fatalf("Populate returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 populated items, got %d", len(items))
	}
	if items[0].Product.Title != "Book" || items[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}

func TestPopulateFailsWhenProductVanished(t *testing.T) {
	finder := &fakeFinder{products: map[primitive.ObjectID]models.Product{}}
	c := models.Cart{Items: []models.CartItem{{ProductID: primitive.NewObjectID(), Quantity: 1}}}

	_, err := Populate(context.Background(), finder, c)

	var validation domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildPreservesOrderAndQuantities(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Email: "buyer@example.com"}
	items := []PopulatedItem{
		{Product: models.Product{ID: primitive.NewObjectID(), Title: "Book", Price: 12.5}, Quantity: 2},
		{Product: models.Product{ID: primitive.NewObjectID(), Title: "Pen", Price: 1.2}, Quantity: 5},
	}

	o, err := Build(user, items)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if o.UserEmail != user.Email || o.UserID != user.ID {
		t.Fatalf("unexpected order owner: %+v", o)
	}
	if len(o.Products) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(o.Products))
	}
	if o.Products[0].Product.Title != "Book" || o.Products[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", o.Products[0])
	}
	if o.Products[1].Product.Title != "Pen" || o.Products[1].Quantity != 5 {
		t.Fatalf("unexpected second line: %+v", o.Products[1])
	}
}

func TestBuildSnapshotSurvivesCatalogEdits(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Email: "buyer@example.com"}
	product := models.Product{ID: primitive.NewObjectID(), Title: "Book", Price: 12.5}
	items := []PopulatedItem{{Product: product, Quantity: 1}}

	o, err := Build(user, items)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// Simulate a later catalog price edit.
	items[0].Product.Price = 99.99
	items[0].Product.Title = "Renamed"

	if o.Products[0].Product.Price != 12.5 || o.Products[0].Product.Title != "Book" {
		t.Fatalf("order snapshot changed with the catalog: %+v", o.Products[0].Product)
	}
}

func TestBuildRejectsUnresolvedProduct(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	items := []PopulatedItem{{Product: models.Product{}, Quantity: 1}}

	_, err := Build(user, items)

	var validation domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFinalizeClearsCartAfterInsert(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	inserter := &fakeInserter{}
	saver := &fakeCartSaver{}

	saved, err := Finalize(context.Background(), inserter, saver, user, models.Order{UserID: user.ID})
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if saved.ID.IsZero() {
		t.Fatal("expected the persisted order id to be set")
	}
	if saver.saved == nil || len(saver.saved.Items) != 0 {
		t.Fatalf("expected the cart to be cleared, got %+v", saver.saved)
	}
}

func TestFinalizeLeavesCartOnInsertFailure(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	inserter := &fakeInserter{err: errors.New("insert failed")}
	saver := &fakeCartSaver{}

	_, err := Finalize(context.Background(), inserter, saver, user, models.Order{UserID: user.ID})
	if err == nil {
		t.Fatal("expected the insert failure to surface")
	}
	if saver.saved != nil {
		t.Fatal("cart must not be touched when the order insert fails")
	}
}
