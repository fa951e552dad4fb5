package services

import (
	"context"
	"math"
	"time"

	"stays-backend/internal/models"
)

// Repositories return mongo.ErrNoDocuments when a record is absent; ids that are not
// valid ObjectIDs are treated as absent.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id string) (models.Property, error)
	Update(ctx context.Context, property models.Property) error
	Delete(ctx context.Context, id string) (models.Property, error)
	List(ctx context.Context, page Page) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
}

type FavoriteRepository interface {
	Insert(ctx context.Context, favorite *models.Favorite) error
	// Remove deletes the (userID, propertyID) record and reports whether one existed.
	Remove(ctx context.Context, userID, propertyID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}

// BookingFilter selects bookings by guest or by owner. Empty fields are ignored, so the
// zero filter matches every booking.
type BookingFilter struct {
	UserID  string
	OwnerID string
}

type PropertyBookingRepository interface {
	Insert(ctx context.Context, booking *models.PropertyBooking) error
	FindByID(ctx context.Context, id string) (models.PropertyBooking, error)
	Update(ctx context.Context, booking models.PropertyBooking) error
	Delete(ctx context.Context, id string) (models.PropertyBooking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.PropertyBooking, error)
}

type GuesthouseBookingRepository interface {
	Insert(ctx context.Context, booking *models.GuesthouseBooking) error
	FindByID(ctx context.Context, id string) (models.GuesthouseBooking, error)
	Update(ctx context.Context, booking models.GuesthouseBooking) error
	Delete(ctx context.Context, id string) (models.GuesthouseBooking, error)
	// List returns bookings newest first.
	List(ctx context.Context, filter BookingFilter) ([]models.GuesthouseBooking, error)
	// CountOverlapping counts bookings of propertyID whose stay intersects [checkIn, checkOut),
	// ignoring excludeID.
	CountOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeID string) (int64, error)
}

// Page is an optional page/limit window. A zero Limit means no pagination.
type Page struct {
	Page  int64
	Limit int64
}

// Skip returns the number of records before the page. It saturates instead of overflowing.
func (p Page) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}
