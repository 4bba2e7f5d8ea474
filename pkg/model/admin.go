package model

import "time"

// Admin is a staff account. Admins live in their own collection and
// authenticate through a separate login path that issues admin-scoped
// tokens, never guest tokens.
type Admin struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-" bson:"password" validate:"required"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}
