package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food item categories
const (
	CategorySnacks    = "Snacks"
	CategoryMeals     = "Meals"
	CategoryBeverages = "Beverages"
	CategoryDesserts  = "Desserts"
	CategoryOther     = "Other"
)

// ValidCategory reports whether c is one of the known menu categories.
func ValidCategory(c string) bool {
	switch c {
	case CategorySnacks, CategoryMeals, CategoryBeverages, CategoryDesserts, CategoryOther:
		return true
	}
	return false
}

// FoodItem represents a menu entry, admin-authored and publicly readable
type FoodItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FoodID       string             `bson:"food_id" json:"food_id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        Money              `bson:"price" json:"price" validate:"required"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	AvailableQty int                `bson:"available_qty" json:"available_qty"`
	Category     string             `bson:"category" json:"category" validate:"required,oneof=Snacks Meals Beverages Desserts Other"`
	Rating       float64            `bson:"rating" json:"rating"`
	ReviewsCount int                `bson:"reviews_count" json:"reviews_count"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
