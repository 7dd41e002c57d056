package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered account. Only the public identity is ever serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:120;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:500;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:1000;not null"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the identity returned by register and the follower lists
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"max=120"`
	Email    string `json:"email" validate:"max=500"`
	Password string `json:"password" validate:"max=72"`
}

// LoginRequest accepts either a username or an email as identifier
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
