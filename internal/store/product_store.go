package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain"
	"storefront/internal/models"
)

const productCollection = "products"

// ProductStore gives read/write access to catalog records. It is constructed
// once at startup and passed to every caller that needs the catalog.
type ProductStore struct {
	collection *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{collection: db.Collection(productCollection)}
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// Find returns products matching the filter, newest first, within the given
// skip/limit window. A limit of zero disables the window.
func (s *ProductStore) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (s *ProductStore) Insert(ctx context.Context, product models.Product) (models.Product, error) {
	product.CreatedAt = time.Now()

	res, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return product, nil
}

func (s *ProductStore) Update(ctx context.Context, product models.Product) error {
	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "product", ID: product.ID.Hex()}
	}
	return nil
}

// Delete removes a product owned by the given user. The owner filter keeps a
// user from deleting records that are not theirs even when ids leak.
func (s *ProductStore) Delete(ctx context.Context, id, ownerUserID primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerUserId": ownerUserID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	return nil
}
