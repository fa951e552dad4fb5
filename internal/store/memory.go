package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

// Store is the set of repositories the services run on.
type Store interface {
	Ping(ctx context.Context) error
	Users() services.UserRepository
	Properties() services.PropertyRepository
	Favorites() services.FavoriteRepository
	PropertyBookings() services.PropertyBookingRepository
	GuesthouseBookings() services.GuesthouseBookingRepository
}

var (
	_ Store = (*Mongo)(nil)
	_ Store = (*Memory)(nil)
)

// Memory is an in-process Store with the same uniqueness rules as the Mongo indexes.
type Memory struct {
	mu          sync.RWMutex
	users       map[primitive.ObjectID]models.User
	properties  map[primitive.ObjectID]models.Property
	favorites   map[primitive.ObjectID]models.Favorite
	flat        map[primitive.ObjectID]models.PropertyBooking
	guesthouses map[primitive.ObjectID]models.GuesthouseBooking
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[primitive.ObjectID]models.User),
		properties:  make(map[primitive.ObjectID]models.Property),
		favorites:   make(map[primitive.ObjectID]models.Favorite),
		flat:        make(map[primitive.ObjectID]models.PropertyBooking),
		guesthouses: make(map[primitive.ObjectID]models.GuesthouseBooking),
	}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Users() services.UserRepository { return memoryUsers{m} }

func (m *Memory) Properties() services.PropertyRepository { return memoryProperties{m} }

func (m *Memory) Favorites() services.FavoriteRepository { return memoryFavorites{m} }

func (m *Memory) PropertyBookings() services.PropertyBookingRepository {
	return memoryPropertyBookings{m}
}

func (m *Memory) GuesthouseBookings() services.GuesthouseBookingRepository {
	return memoryGuesthouseBookings{m}
}

func duplicateKey(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error index: " + index,
	}}}
}

func lookup[T any](items map[primitive.ObjectID]T, id string) (T, error) {
	var zero T
	oid, err := objectID(id)
	if err != nil {
		return zero, err
	}
	item, ok := items[oid]
	if !ok {
		return zero, mongo.ErrNoDocuments
	}
	return item, nil
}

func remove[T any](items map[primitive.ObjectID]T, id string) (T, error) {
	item, err := lookup(items, id)
	if err != nil {
		return item, err
	}
	oid, _ := objectID(id)
	delete(items, oid)
	return item, nil
}

// sortByCreated orders items by creation time, breaking ties by id.
func sortByCreated[T any](items []T, created func(T) time.Time, id func(T) primitive.ObjectID, newest bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			if newest {
				return ci.After(cj)
			}
			return ci.Before(cj)
		}
		if newest {
			return id(items[i]).Hex() > id(items[j]).Hex()
		}
		return id(items[i]).Hex() < id(items[j]).Hex()
	})
}

type memoryUsers struct{ m *Memory }

func (r memoryUsers) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range r.m.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r memoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.emailTaken(user.Email, primitive.NilObjectID) {
		return duplicateKey("users.email")
	}
	user.ID = primitive.NewObjectID()
	r.m.users[user.ID] = *user
	return nil
}

func (r memoryUsers) FindByID(_ context.Context, id string) (models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lookup(r.m.users, id)
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (r memoryUsers) Update(_ context.Context, user models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	if r.emailTaken(user.Email, user.ID) {
		return duplicateKey("users.email")
	}
	r.m.users[user.ID] = user
	return nil
}

func (r memoryUsers) Delete(_ context.Context, id string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return remove(r.m.users, id)
}

func (r memoryUsers) List(context.Context) ([]models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, u)
	}
	sortByCreated(out, func(u models.User) time.Time { return u.CreatedAt }, func(u models.User) primitive.ObjectID { return u.ID }, true)
	return out, nil
}

type memoryProperties struct{ m *Memory }

func (r memoryProperties) Create(_ context.Context, property *models.Property) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	property.ID = primitive.NewObjectID()
	r.m.properties[property.ID] = *property
	return nil
}

func (r memoryProperties) FindByID(_ context.Context, id string) (models.Property, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lookup(r.m.properties, id)
}

func (r memoryProperties) Update(_ context.Context, property models.Property) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.properties[property.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.m.properties[property.ID] = property
	return nil
}

func (r memoryProperties) Delete(_ context.Context, id string) (models.Property, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return remove(r.m.properties, id)
}

func (r memoryProperties) List(_ context.Context, page services.Page) ([]models.Property, error) {
	out := r.filter(func(models.Property) bool { return true })
	if page.Limit <= 0 {
		return out, nil
	}
	start := page.Skip()
	if start < 0 || start >= int64(len(out)) {
		return []models.Property{}, nil
	}
	end := start + page.Limit
	if end < start || end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (r memoryProperties) ListByOwner(_ context.Context, ownerID string) ([]models.Property, error) {
	return r.filter(func(p models.Property) bool { return p.OwnerID == ownerID }), nil
}

func (r memoryProperties) filter(keep func(models.Property) bool) []models.Property {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Property, 0)
	for _, p := range r.m.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	sortByCreated(out, func(p models.Property) time.Time { return p.CreatedAt }, func(p models.Property) primitive.ObjectID { return p.ID }, true)
	return out
}

type memoryFavorites struct{ m *Memory }

func (r memoryFavorites) Insert(_ context.Context, favorite *models.Favorite) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, f := range r.m.favorites {
		if f.UserID == favorite.UserID && f.PropertyID == favorite.PropertyID {
			return duplicateKey("favorites.userId_propertyID")
		}
	}
	favorite.ID = primitive.NewObjectID()
	r.m.favorites[favorite.ID] = *favorite
	return nil
}

func (r memoryFavorites) Remove(_ context.Context, userID, propertyID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, f := range r.m.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			delete(r.m.favorites, id)
			return true, nil
		}
	}
	return false, nil
}

func (r memoryFavorites) ListByUser(_ context.Context, userID string) ([]models.Favorite, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.Favorite, 0)
	for _, f := range r.m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sortByCreated(out, func(f models.Favorite) time.Time { return f.CreatedAt }, func(f models.Favorite) primitive.ObjectID { return f.ID }, true)
	return out, nil
}

func matches(filter services.BookingFilter, userID, ownerID string) bool {
	if filter.UserID != "" && filter.UserID != userID {
		return false
	}
	if filter.OwnerID != "" && filter.OwnerID != ownerID {
		return false
	}
	return true
}

type memoryPropertyBookings struct{ m *Memory }

func (r memoryPropertyBookings) Insert(_ context.Context, booking *models.PropertyBooking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	r.m.flat[booking.ID] = *booking
	return nil
}

func (r memoryPropertyBookings) FindByID(_ context.Context, id string) (models.PropertyBooking, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lookup(r.m.flat, id)
}

func (r memoryPropertyBookings) Update(_ context.Context, booking models.PropertyBooking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.flat[booking.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.m.flat[booking.ID] = booking
	return nil
}

func (r memoryPropertyBookings) Delete(_ context.Context, id string) (models.PropertyBooking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return remove(r.m.flat, id)
}

func (r memoryPropertyBookings) List(_ context.Context, filter services.BookingFilter) ([]models.PropertyBooking, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.PropertyBooking, 0)
	for _, b := range r.m.flat {
		if matches(filter, b.UserID, b.OwnerID) {
			out = append(out, b)
		}
	}
	sortByCreated(out, func(b models.PropertyBooking) time.Time { return b.CreatedAt }, func(b models.PropertyBooking) primitive.ObjectID { return b.ID }, false)
	return out, nil
}

type memoryGuesthouseBookings struct{ m *Memory }

func (r memoryGuesthouseBookings) Insert(_ context.Context, booking *models.GuesthouseBooking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	r.m.guesthouses[booking.ID] = *booking
	return nil
}

func (r memoryGuesthouseBookings) FindByID(_ context.Context, id string) (models.GuesthouseBooking, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lookup(r.m.guesthouses, id)
}

func (r memoryGuesthouseBookings) Update(_ context.Context, booking models.GuesthouseBooking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.guesthouses[booking.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.m.guesthouses[booking.ID] = booking
	return nil
}

func (r memoryGuesthouseBookings) Delete(_ context.Context, id string) (models.GuesthouseBooking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return remove(r.m.guesthouses, id)
}

func (r memoryGuesthouseBookings) List(_ context.Context, filter services.BookingFilter) ([]models.GuesthouseBooking, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]models.GuesthouseBooking, 0)
	for _, b := range r.m.guesthouses {
		if matches(filter, b.UserID, b.OwnerID) {
			out = append(out, b)
		}
	}
	sortByCreated(out, func(b models.GuesthouseBooking) time.Time { return b.CreatedAt }, func(b models.GuesthouseBooking) primitive.ObjectID { return b.ID }, true)
	return out, nil
}

func (r memoryGuesthouseBookings) CountOverlapping(_ context.Context, propertyID string, checkIn, checkOut time.Time, excludeID string) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var count int64
	for id, b := range r.m.guesthouses {
		if id.Hex() == excludeID || b.PropertyID != propertyID {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			count++
		}
	}
	return count, nil
}
