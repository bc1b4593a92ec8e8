package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        primitive.ObjectID `json:"-"         bson:"_id,omitempty"`
	Name      string             `json:"name"      bson:"name"`
	Email     string             `json:"email"     bson:"email"`
	Password  string             `json:"-"         bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the part of a User echoed back to clients.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email}
}

// SignupRequest is the JSON body for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse wraps the user returned by signup and login.
type AuthResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}
