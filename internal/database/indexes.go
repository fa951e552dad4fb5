package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stays-backend/internal/store"
)

// EnsureIndexes creates the indexes every collection relies on. It keeps going
// after a failure and returns the first error.
func EnsureIndexes(db *mongo.Database) error {
	var first error
	for _, ensure := range []func(*mongo.Database) error{
		EnsureUserIndexes,
		EnsurePropertyIndexes,
		EnsureFavoriteIndexes,
		EnsureBookingIndexes,
	} {
		if err := ensure(db); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func EnsureUserIndexes(db *mongo.Database) error {
	return createIndexes(db, store.UsersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	})
}

func EnsurePropertyIndexes(db *mongo.Database) error {
	return createIndexes(db, store.PropertiesCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "OwnerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("owner_created"),
		},
	})
}

func EnsureFavoriteIndexes(db *mongo.Database) error {
	return createIndexes(db, store.FavoritesCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "propertyID", Value: 1}},
			Options: options.Index().SetName("user_property_unique").SetUnique(true),
		},
	})
}

func EnsureBookingIndexes(db *mongo.Database) error {
	err := createIndexes(db, store.PropertyBookingsCollection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userID", Value: 1}}, Options: options.Index().SetName("userID_index")},
		{Keys: bson.D{{Key: "OwnerId", Value: 1}}, Options: options.Index().SetName("OwnerId_index")},
	})
	if err != nil {
		return err
	}
	return createIndexes(db, store.GuesthouseBookingsCollection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userID", Value: 1}}, Options: options.Index().SetName("userID_index")},
		{Keys: bson.D{{Key: "OwnerId", Value: 1}}, Options: options.Index().SetName("OwnerId_index")},
		{
			Keys:    bson.D{{Key: "propertyID", Value: 1}, {Key: "checkIn", Value: 1}},
			Options: options.Index().SetName("property_checkIn"),
		},
	})
}

func createIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("[DB] [INFO] ensuring %d index(es) on %s", len(models), collection)
	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		log.Printf("[DB] [ERROR] index creation on %s failed: %v", collection, err)
		return err
	}
	return nil
}
