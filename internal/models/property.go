package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyType string

const (
	TypeCoucouBeach PropertyType = "Coucou-Beach"
	TypeGuesthouse  PropertyType = "guesthouse"
	TypeResidence   PropertyType = "residence"
)

type PriceUnit string

const (
	UnitDay   PriceUnit = "Day"
	UnitNight PriceUnit = "Night"
	UnitMonth PriceUnit = "Month"
)

// DefaultPropertyImage is rendered by the client as a CSS background when no image was uploaded.
const DefaultPropertyImage = "linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)"

// PriceUnit returns the unit a listing of this type is priced in.
func (t PropertyType) PriceUnit() (PriceUnit, bool) {
	switch t {
	case TypeCoucouBeach:
		return UnitDay, true
	case TypeGuesthouse:
		return UnitNight, true
	case TypeResidence:
		return UnitMonth, true
	}
	return "", false
}

func (t PropertyType) Valid() bool {
	_, ok := t.PriceUnit()
	return ok
}

// FlatRate reports whether bookings of this type are priced per stay rather than per night.
func (t PropertyType) FlatRate() bool {
	return t == TypeCoucouBeach || t == TypeResidence
}

type Property struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID   string             `bson:"OwnerId" json:"OwnerId"`
	Type      PropertyType       `bson:"type" json:"type"`
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	Phone     string             `bson:"phone" json:"phone"`
	Price     float64            `bson:"price" json:"price"`
	PriceUnit PriceUnit          `bson:"priceUnit" json:"priceUnit"`
	Rating    float64            `bson:"rating" json:"rating"`
	Reviews   int                `bson:"reviews" json:"reviews"`
	Amenities StringList         `bson:"amenities" json:"amenities"`
	Image     string             `bson:"image" json:"image"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
