package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"50", 5000},
		{"50.2", 5020},
		{"50.25", 5025},
		{"0.05", 5},
		{"3.755", 376}, // third digit rounds
		{"-12.50", -1250},
		{"+7", 700},
		{"5E+1", 5000}, // Decimal128 exponent form
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"", "abc", "1.2x"} {
		_, err := ParseMoney(bad)
		assert.Error(t, err, bad)
	}
}

func TestMoneyJSONInputShapes(t *testing.T) {
	// The legacy API accepted a plain number, a numeric string, or a Mongo
	// extended-JSON wrapper; all three must land on the same value.
	inputs := []string{
		`50.25`,
		`"50.25"`,
		`{"$numberDecimal": "50.25"}`,
	}
	for _, in := range inputs {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(in), &m), in)
		assert.Equal(t, Money(5025), m, in)
	}

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, Money(0), m)
}

func TestMoneyJSONOutputIsPlainNumber(t *testing.T) {
	out, err := json.Marshal(Money(5025))
	require.NoError(t, err)
	assert.Equal(t, `50.25`, string(out))

	out, err = json.Marshal(Money(5000))
	require.NoError(t, err)
	assert.Equal(t, `50`, string(out))
}

func TestMoneyBSONRoundTrip(t *testing.T) {
	type doc struct {
		Price Money `bson:"price"`
	}

	raw, err := bson.Marshal(doc{Price: 5025})
	require.NoError(t, err)

	var got doc
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, Money(5025), got.Price)

	// Documents written by earlier code may hold plain doubles
	raw, err = bson.Marshal(bson.M{"price": 50.25})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, Money(5025), got.Price)
}

func TestMoneyArithmetic(t *testing.T) {
	assert.Equal(t, Money(10000), Money(5000).Mul(2))
	assert.Equal(t, "50.05", Money(5005).String())
	assert.Equal(t, "-3.20", Money(-320).String())
	assert.InDelta(t, 50.25, Money(5025).Float64(), 1e-9)
}
