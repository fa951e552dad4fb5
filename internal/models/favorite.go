package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteSnapshot is the copy of a property's display fields taken when it was favorited.
// It is never refreshed when the property changes.
type FavoriteSnapshot struct {
	Type      PropertyType `bson:"type,omitempty" json:"type,omitempty"`
	Name      string       `bson:"name,omitempty" json:"name,omitempty"`
	Location  string       `bson:"location,omitempty" json:"location,omitempty"`
	Price     float64      `bson:"price" json:"price"`
	PriceUnit PriceUnit    `bson:"priceUnit,omitempty" json:"priceUnit,omitempty"`
	Rating    float64      `bson:"rating" json:"rating"`
	Reviews   int          `bson:"reviews" json:"reviews"`
	Amenities StringList   `bson:"amenities" json:"amenities"`
	Image     string       `bson:"image,omitempty" json:"image,omitempty"`
}

type Favorite struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID           string             `bson:"userId" json:"userId"`
	PropertyID       string             `bson:"propertyID" json:"propertyID"`
	FavoriteSnapshot `bson:",inline"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
