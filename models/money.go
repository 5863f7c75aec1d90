package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is the single currency representation used across the API: a
// fixed-point amount in hundredths (paise). It is stored as Decimal128 in
// MongoDB and rendered as a plain JSON number, and it accepts the legacy
// input shapes on the way in (number, numeric string, or an extended-JSON
// {"$numberDecimal": "..."} wrapper), so no handler ever branches on the
// shape of a price.
type Money int64

// FromFloat converts an amount in rupees to Money, rounding to the paisa.
func FromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// ParseMoney parses a decimal string such as "50", "50.2" or "-3.755"
// (rounded to two places) into Money.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty money value")
	}
	// Decimal128 may stringify with an exponent; fall back to float parsing.
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid money value %q", s)
		}
		return FromFloat(f), nil
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money value %q", s)
	}

	cents := int64(0)
	if frac != "" {
		digits := frac
		if len(digits) > 3 {
			digits = digits[:3]
		}
		for _, c := range digits {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("invalid money value %q", s)
			}
		}
		switch len(digits) {
		case 1:
			cents = int64(digits[0]-'0') * 10
		case 2:
			cents, _ = strconv.ParseInt(digits, 10, 64)
		default:
			cents, _ = strconv.ParseInt(digits[:2], 10, 64)
			if digits[2] >= '5' {
				cents++
			}
		}
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

// Float64 returns the amount in rupees.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Mul scales the amount by a quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// String renders the amount with two decimal places, e.g. "50.00".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits a plain number (50.25, not a string or wrapper).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float64(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number, a numeric string, or a Mongo extended-JSON
// decimal wrapper.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	switch data[0] {
	case '{':
		var wrapper struct {
			NumberDecimal string `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return err
		}
		v, err := ParseMoney(wrapper.NumberDecimal)
		if err != nil {
			return err
		}
		*m = v
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = v
	default:
		v, err := ParseMoney(string(data))
		if err != nil {
			return err
		}
		*m = v
	}
	return nil
}

// MarshalBSONValue stores the amount as Decimal128.
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(m.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

// UnmarshalBSONValue reads Decimal128 as well as plain numeric fields left
// behind by earlier writers.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDecimal128:
		d, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("money: malformed decimal128")
		}
		v, err := ParseMoney(d.String())
		if err != nil {
			return err
		}
		*m = v
	case bson.TypeDouble:
		*m = FromFloat(raw.Double())
	case bson.TypeInt32:
		*m = Money(raw.Int32()) * 100
	case bson.TypeInt64:
		*m = Money(raw.Int64()) * 100
	case bson.TypeString:
		v, err := ParseMoney(raw.StringValue())
		if err != nil {
			return err
		}
		*m = v
	case bson.TypeNull:
		*m = 0
	default:
		return fmt.Errorf("money: cannot decode BSON type %s", t)
	}
	return nil
}
