package model

import "time"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	MobileNumber string    `json:"mobile_number" bson:"mobile_number" validate:"required"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Registration is the inbound payload for account creation. The cleartext
// password only ever lives here; it is hashed before a User is built.
type Registration struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	MobileNumber string `json:"mobile_number" validate:"required"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
