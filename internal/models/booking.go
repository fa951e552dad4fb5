package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle tag of a booking. Creation is terminal until the booking is deleted.
type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// GuestContact holds the contact fields typed in by the guest.
type GuestContact struct {
	FullName        string `bson:"fullname" json:"fullname"`
	Email           string `bson:"emailadress" json:"emailadress"`
	Phone           string `bson:"phonenumber" json:"phonenumber"`
	SpecialRequests string `bson:"specialrequests" json:"specialrequests"`
}

// BookedProperty is the property snapshot stored alongside a booking.
type BookedProperty struct {
	OwnerID          string       `bson:"OwnerId" json:"OwnerId"`
	PropertyID       string       `bson:"propertyID" json:"propertyID"`
	PropertyName     string       `bson:"propertyName" json:"propertyName"`
	PropertyLocation string       `bson:"propertyLocation" json:"propertyLocation"`
	PropertyType     PropertyType `bson:"propertyType" json:"propertyType"`
	Image            string       `bson:"image,omitempty" json:"image,omitempty"`
}

// PropertyBooking is a flat-rate booking of a beach day-pass or residence.
type PropertyBooking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"userID" json:"userID"`
	GuestContact   `bson:",inline"`
	BookedProperty `bson:",inline"`
	Guests         int           `bson:"Nguests" json:"Nguests"`
	Price          float64       `bson:"price" json:"price"`
	PriceUnit      PriceUnit     `bson:"priceUnit" json:"priceUnit"`
	TotalPrice     float64       `bson:"totalprice" json:"totalprice"`
	Status         BookingStatus `bson:"status" json:"status"`
	BookingDate    time.Time     `bson:"bookingDate" json:"bookingDate"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// GuesthouseBooking is a per-night booking spanning CheckIn to CheckOut.
type GuesthouseBooking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"userID" json:"userID"`
	GuestContact   `bson:",inline"`
	BookedProperty `bson:",inline"`
	CheckIn        time.Time     `bson:"checkIn" json:"checkIn"`
	CheckOut       time.Time     `bson:"checkOut" json:"checkOut"`
	Guests         int           `bson:"Nguests" json:"Nguests"`
	PricePerNight  float64       `bson:"pricePerNight" json:"pricePerNight"`
	NumberOfNights int           `bson:"numberOfNights" json:"numberOfNights"`
	TotalPrice     float64       `bson:"totalprice" json:"totalprice"`
	Status         BookingStatus `bson:"status" json:"status"`
	BookingDate    time.Time     `bson:"bookingDate" json:"bookingDate"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
