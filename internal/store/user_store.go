package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/domain"
	"storefront/internal/models"
)

const userCollection = "users"

// UserStore manages account records and the cart embedded in each of them.
type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: db.Collection(userCollection)}
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, domain.NotFoundError{Resource: "user", ID: id.Hex()}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, domain.NotFoundError{Resource: "user", ID: email}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (s *UserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

// SaveCart replaces the user's embedded cart wholesale. Concurrent writes
// from two sessions are last-write-wins at cart granularity.
func (s *UserStore) SaveCart(ctx context.Context, userID primitive.ObjectID, c models.Cart) error {
	res, err := s.collection.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"cart":      c,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "user", ID: userID.Hex()}
	}
	return nil
}

func (s *UserStore) SetResetToken(ctx context.Context, userID primitive.ObjectID, tokenHash string, expiry time.Time) error {
	res, err := s.collection.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"resetTokenHash":   tokenHash,
		"resetTokenExpiry": expiry,
		"updatedAt":        time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "user", ID: userID.Hex()}
	}
	return nil
}

// FindByResetToken resolves a user by a still-valid reset token hash. Expiry
// is checked here on lookup; expired tokens are never swept proactively.
func (s *UserStore) FindByResetToken(ctx context.Context, tokenHash string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{
		"resetTokenHash":   tokenHash,
		"resetTokenExpiry": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, domain.NotFoundError{Resource: "reset token", ID: tokenHash}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return user, nil
}

// UpdatePassword stores the new hash and clears any reset token in the same
// write, so a token cannot be replayed after use.
func (s *UserStore) UpdatePassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	res, err := s.collection.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now(),
		},
		"$unset": bson.M{
			"resetTokenHash":   "",
			"resetTokenExpiry": "",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "user", ID: userID.Hex()}
	}
	return nil
}
