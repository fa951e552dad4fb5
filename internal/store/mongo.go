package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

const (
	UsersCollection              = "users"
	PropertiesCollection         = "properties"
	FavoritesCollection          = "favorites"
	PropertyBookingsCollection   = "property_bookings"
	GuesthouseBookingsCollection = "guesthouse_bookings"
)

// Mongo serves the repositories from one MongoDB database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

func (m *Mongo) Users() services.UserRepository {
	return &mongoUsers{col: m.db.Collection(UsersCollection)}
}

func (m *Mongo) Properties() services.PropertyRepository {
	return &mongoProperties{col: m.db.Collection(PropertiesCollection)}
}

func (m *Mongo) Favorites() services.FavoriteRepository {
	return &mongoFavorites{col: m.db.Collection(FavoritesCollection)}
}

func (m *Mongo) PropertyBookings() services.PropertyBookingRepository {
	return &mongoPropertyBookings{col: m.db.Collection(PropertyBookingsCollection)}
}

func (m *Mongo) GuesthouseBookings() services.GuesthouseBookingRepository {
	return &mongoGuesthouseBookings{col: m.db.Collection(GuesthouseBookingsCollection)}
}

// objectID parses id, reporting an unparseable id as a missing document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, mongo.ErrNoDocuments
	}
	return oid, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (T, error) {
	var out T
	err := col.FindOne(ctx, filter).Decode(&out)
	return out, err
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id string) (T, error) {
	oid, err := objectID(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return findOne[T](ctx, col, bson.M{"_id": oid})
}

func replaceByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, doc interface{}) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func deleteByID[T any](ctx context.Context, col *mongo.Collection, id string) (T, error) {
	var out T
	oid, err := objectID(id)
	if err != nil {
		return out, err
	}
	err = col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&out)
	return out, err
}

func insert(ctx context.Context, col *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type mongoUsers struct {
	col *mongo.Collection
}

func (r *mongoUsers) Create(ctx context.Context, user *models.User) error {
	oid, err := insert(ctx, r.col, user)
	if err != nil {
		return err
	}
	user.ID = oid
	return nil
}

func (r *mongoUsers) FindByID(ctx context.Context, id string) (models.User, error) {
	return findByID[models.User](ctx, r.col, id)
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"email": email})
}

func (r *mongoUsers) Update(ctx context.Context, user models.User) error {
	return replaceByID(ctx, r.col, user.ID, user)
}

func (r *mongoUsers) Delete(ctx context.Context, id string) (models.User, error) {
	return deleteByID[models.User](ctx, r.col, id)
}

func (r *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.col, bson.M{}, options.Find().SetSort(newestFirst))
}

type mongoProperties struct {
	col *mongo.Collection
}

func (r *mongoProperties) Create(ctx context.Context, property *models.Property) error {
	oid, err := insert(ctx, r.col, property)
	if err != nil {
		return err
	}
	property.ID = oid
	return nil
}

func (r *mongoProperties) FindByID(ctx context.Context, id string) (models.Property, error) {
	return findByID[models.Property](ctx, r.col, id)
}

func (r *mongoProperties) Update(ctx context.Context, property models.Property) error {
	return replaceByID(ctx, r.col, property.ID, property)
}

func (r *mongoProperties) Delete(ctx context.Context, id string) (models.Property, error) {
	return deleteByID[models.Property](ctx, r.col, id)
}

func (r *mongoProperties) List(ctx context.Context, page services.Page) ([]models.Property, error) {
	opts := options.Find().SetSort(newestFirst)
	if page.Limit > 0 {
		opts.SetLimit(page.Limit).SetSkip(page.Skip())
	}
	return findAll[models.Property](ctx, r.col, bson.M{}, opts)
}

func (r *mongoProperties) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return findAll[models.Property](ctx, r.col, bson.M{"OwnerId": ownerID}, options.Find().SetSort(newestFirst))
}

type mongoFavorites struct {
	col *mongo.Collection
}

func (r *mongoFavorites) Insert(ctx context.Context, favorite *models.Favorite) error {
	oid, err := insert(ctx, r.col, favorite)
	if err != nil {
		return err
	}
	favorite.ID = oid
	return nil
}

func (r *mongoFavorites) Remove(ctx context.Context, userID, propertyID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "propertyID": propertyID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoFavorites) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	return findAll[models.Favorite](ctx, r.col, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
}

func bookingQuery(filter services.BookingFilter) bson.M {
	query := bson.M{}
	if filter.UserID != "" {
		query["userID"] = filter.UserID
	}
	if filter.OwnerID != "" {
		query["OwnerId"] = filter.OwnerID
	}
	return query
}

type mongoPropertyBookings struct {
	col *mongo.Collection
}

func (r *mongoPropertyBookings) Insert(ctx context.Context, booking *models.PropertyBooking) error {
	oid, err := insert(ctx, r.col, booking)
	if err != nil {
		return err
	}
	booking.ID = oid
	return nil
}

func (r *mongoPropertyBookings) FindByID(ctx context.Context, id string) (models.PropertyBooking, error) {
	return findByID[models.PropertyBooking](ctx, r.col, id)
}

func (r *mongoPropertyBookings) Update(ctx context.Context, booking models.PropertyBooking) error {
	return replaceByID(ctx, r.col, booking.ID, booking)
}

func (r *mongoPropertyBookings) Delete(ctx context.Context, id string) (models.PropertyBooking, error) {
	return deleteByID[models.PropertyBooking](ctx, r.col, id)
}

func (r *mongoPropertyBookings) List(ctx context.Context, filter services.BookingFilter) ([]models.PropertyBooking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return findAll[models.PropertyBooking](ctx, r.col, bookingQuery(filter), opts)
}

type mongoGuesthouseBookings struct {
	col *mongo.Collection
}

func (r *mongoGuesthouseBookings) Insert(ctx context.Context, booking *models.GuesthouseBooking) error {
	oid, err := insert(ctx, r.col, booking)
	if err != nil {
		return err
	}
	booking.ID = oid
	return nil
}

func (r *mongoGuesthouseBookings) FindByID(ctx context.Context, id string) (models.GuesthouseBooking, error) {
	return findByID[models.GuesthouseBooking](ctx, r.col, id)
}

func (r *mongoGuesthouseBookings) Update(ctx context.Context, booking models.GuesthouseBooking) error {
	return replaceByID(ctx, r.col, booking.ID, booking)
}

func (r *mongoGuesthouseBookings) Delete(ctx context.Context, id string) (models.GuesthouseBooking, error) {
	return deleteByID[models.GuesthouseBooking](ctx, r.col, id)
}

func (r *mongoGuesthouseBookings) List(ctx context.Context, filter services.BookingFilter) ([]models.GuesthouseBooking, error) {
	return findAll[models.GuesthouseBooking](ctx, r.col, bookingQuery(filter), options.Find().SetSort(newestFirst))
}

func (r *mongoGuesthouseBookings) CountOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeID string) (int64, error) {
	query := bson.M{
		"propertyID": propertyID,
		"checkIn":    bson.M{"$lt": checkOut},
		"checkOut":   bson.M{"$gt": checkIn},
	}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		query["_id"] = bson.M{"$ne": oid}
	}
	return r.col.CountDocuments(ctx, query)
}
