package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// MaxTokenNumber is the highest pickup token handed out at the counter.
const MaxTokenNumber = 100

func newID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewOrderID returns a collision-resistant order identifier, "ORD" followed
// by 32 hex characters.
func NewOrderID() string {
	return newID("ORD")
}

// NewOrderItemID returns a collision-resistant order line identifier.
func NewOrderItemID() string {
	return newID("ORDITEM")
}

// NewFoodID returns a business identifier for a menu item when the admin
// does not supply one.
func NewFoodID() string {
	return newID("FOOD")
}

// DrawTokenNumber returns a pickup token in [1, MaxTokenNumber].
func DrawTokenNumber() int {
	return rand.Intn(MaxTokenNumber) + 1
}
