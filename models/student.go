package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student represents a registered student in the system
type Student struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentID     int64              `bson:"student_id" json:"student_id"`
	Name          string             `bson:"name" json:"name"`
	PhNo          string             `bson:"ph_no" json:"ph_no"`
	DeptName      string             `bson:"dept_name" json:"dept_name"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	LoyaltyPoints int                `bson:"loyalty_points" json:"loyalty_points"`
	Password      string             `bson:"password,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
