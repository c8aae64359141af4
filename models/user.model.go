package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	Role              string             `bson:"role" json:"role"` // "user" or "admin"
	IsVerified        bool               `bson:"is_verified" json:"is_verified"`
	Verified          time.Time          `bson:"verified,omitempty" json:"-"`
	VerificationToken string             `bson:"verification_token" json:"-"`
	PasswordToken     string             `bson:"password_token,omitempty" json:"-"` // one-way hash, never the raw token
	PasswordTokenExp  time.Time          `bson:"password_token_exp,omitempty" json:"-"`
}

// TokenUser is the minimal claim payload issued after login. It never
// carries the password hash or any token material.
type TokenUser struct {
	UserID primitive.ObjectID `json:"user_id"`
	Name   string             `json:"name"`
	Role   string             `json:"role"`
}

// NewTokenUser builds the claim payload for a user
func NewTokenUser(user *User) TokenUser {
	return TokenUser{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}
}
