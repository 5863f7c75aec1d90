package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents a canteen administrator account (seeded out-of-band)
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role" json:"role"` // always "admin"
}
