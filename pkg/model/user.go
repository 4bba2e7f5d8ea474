package model

import "time"

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password" validate:"required"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at" validate:"omitempty"`
}

// UserUpdate carries the mutable user fields. Nil or empty means unchanged.
type UserUpdate struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}
