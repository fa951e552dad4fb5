package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

// User represents an account. OTP values are stored hashed.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"password" json:"-"`
	Role              Role               `bson:"role" json:"role"`
	VerifyOTP         string             `bson:"verifyOtp" json:"-"`
	VerifyOTPExpireAt time.Time          `bson:"verifyOtpExpireAt" json:"-"`
	IsAccountVerified bool               `bson:"isAccountverified" json:"isAccountverified"`
	ResetOTP          string             `bson:"resetOtp" json:"-"`
	ResetOTPExpireAt  time.Time          `bson:"resetOtpExpiredAt" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserData is the public projection returned to the presentation layer.
type UserData struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAccountVerified bool   `json:"isAccountverified"`
	Role              Role   `json:"role"`
}

func (u User) Data() UserData {
	return UserData{
		ID:                u.ID.Hex(),
		Name:              u.Name,
		Email:             u.Email,
		IsAccountVerified: u.IsAccountVerified,
		Role:              u.Role,
	}
}
