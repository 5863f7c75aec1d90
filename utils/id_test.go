package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIDFormat(t *testing.T) {
	id := NewOrderID()
	assert.True(t, strings.HasPrefix(id, "ORD"))
	assert.Len(t, id, len("ORD")+32)
}

func TestOrderItemIDFormat(t *testing.T) {
	id := NewOrderItemID()
	assert.True(t, strings.HasPrefix(id, "ORDITEM"))
	assert.Len(t, id, len("ORDITEM")+32)
}

func TestIDsDoNotCollide(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

func TestDrawTokenNumberRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := DrawTokenNumber()
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, MaxTokenNumber)
	}
}
