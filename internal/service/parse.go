package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"herohome/internal/errors"
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.ErrInvalidID
	}
	return oid, nil
}

// parseRating reads the leading integer of a rating the way browsers' parseInt
// does: "4 stars" is 4, 4.9 is 4, "great" is rejected.
func parseRating(v interface{}) (int, error) {
	switch r := v.(type) {
	case float64:
		if math.IsNaN(r) || math.IsInf(r, 0) || math.Abs(r) > math.MaxInt32 {
			return 0, errors.ErrInvalidRating
		}
		return int(r), nil
	case int:
		return r, nil
	case string:
		m := leadingInt.FindString(strings.TrimSpace(r))
		if m == "" {
			return 0, errors.ErrInvalidRating
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, errors.ErrInvalidRating
		}
		return n, nil
	}
	return 0, errors.ErrInvalidRating
}

// priceValue coerces a stored price to a number the way parseFloat(x) || 0
// does: the leading numeric prefix of a string counts, anything else is zero.
func priceValue(v interface{}) decimal.Decimal {
	switch p := v.(type) {
	case float64:
		return fromFloat(p)
	case float32:
		return fromFloat(float64(p))
	case int:
		return decimal.NewFromInt(int64(p))
	case int32:
		return decimal.NewFromInt(int64(p))
	case int64:
		return decimal.NewFromInt(p)
	case primitive.Decimal128:
		return priceValue(p.String())
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(p))
		if m == "" {
			return decimal.Zero
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return decimal.Zero
		}
		return fromFloat(f)
	}
	return decimal.Zero
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func sumPrices(prices []interface{}) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(priceValue(p))
	}
	return total
}
