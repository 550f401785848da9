package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a platform account that can read and write blog posts.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phone_number" json:"phoneNumber"`
	Address      string    `bson:"address" json:"address"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	UserType     UserType  `bson:"user_type" json:"userType"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
}

// UserType represents the kind of account on the traceability platform
type UserType string

const (
	UserTypeFarmer   UserType = "FARMER"
	UserTypeCustomer UserType = "CUSTOMER"
)

func DefaultUserType() UserType {
	return UserTypeCustomer
}

// Claims are the access token claims.
type Claims struct {
	UserID   string   `json:"uid"`
	UserType UserType `json:"utype"`
	jwt.RegisteredClaims
}

// LoginWithCredentialsRequest is the credential login payload.
type LoginWithCredentialsRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required" binding:"required"`
	Password    string `json:"password" validate:"required" binding:"required"`
}

// AuthResult is the data block of a successful login.
type AuthResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
