package domain

import (
	"time"
)

type User struct {
	ID           string     `json:"id" bson:"_id"`
	Email        string     `json:"email" bson:"email"`
	Username     string     `json:"username,omitempty" bson:"username,omitempty"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	IsAdmin      bool       `json:"is_admin" bson:"is_admin"`
	IsDemo       bool       `json:"is_demo" bson:"is_demo"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}
