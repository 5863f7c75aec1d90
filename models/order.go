package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment modes
const (
	PaymentOnline = "Online"
	PaymentCash   = "Cash"
	PaymentUPI    = "UPI"
)

// ValidPaymentMode reports whether m is an accepted payment mode.
func ValidPaymentMode(m string) bool {
	switch m {
	case PaymentOnline, PaymentCash, PaymentUPI:
		return true
	}
	return false
}

// Order statuses. Status starts at Ordered; the kitchen advances it
// out-of-band, there is no transition endpoint.
const (
	StatusOrdered   = "Ordered"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusPaid      = "Paid"
)

// Order represents one placed order owned by a student
type Order struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID             string             `bson:"order_id" json:"order_id"`
	StudentID           primitive.ObjectID `bson:"student_id" json:"student_id"`
	PaymentMode         string             `bson:"payment_mode" json:"payment_mode"`
	TotalPrice          Money              `bson:"total_price" json:"total_price"`
	Status              string             `bson:"status" json:"status"`
	TokenNumber         int                `bson:"token_number" json:"token_number"`
	OrderType           string             `bson:"order_type" json:"order_type"`
	PickupTime          string             `bson:"pickup_time" json:"pickup_time"`
	SpecialInstructions string             `bson:"special_instructions" json:"special_instructions"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItem is one line of an order. PriceAtTime is captured from the cart
// at placement and never tracks later menu price changes.
type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderItemID   string             `bson:"order_item_id" json:"order_item_id"`
	OrderID       primitive.ObjectID `bson:"order_id" json:"order_id"`
	FoodID        primitive.ObjectID `bson:"food_id" json:"food_id"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Customization string             `bson:"customization,omitempty" json:"customization,omitempty"`
	PriceAtTime   Money              `bson:"price_at_time" json:"price_at_time"`
}
