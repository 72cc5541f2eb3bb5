package coupons

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

// Coupon is a percentage discount applied to the cart subtotal.
type Coupon struct {
	Code       string
	PercentOff decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// catalog holds the active promotion codes. Codes are matched case
// insensitively but stored uppercase.
var catalog = map[string]Coupon{
	"WELCOME10": {Code: "WELCOME10", PercentOff: decimal.NewFromInt(10)},
	"SUMMER20":  {Code: "SUMMER20", PercentOff: decimal.NewFromInt(20)},
	"SALE30":    {Code: "SALE30", PercentOff: decimal.NewFromInt(30)},
}

// Lookup resolves a coupon code. Unknown codes return a validation error.
func Lookup(code string) (*Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "coupon code is required")
	}
	coupon, ok := catalog[normalized]
	if !ok {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid coupon code").
			WithDetails(map[string]string{"coupon_code": code})
	}
	return &coupon, nil
}

// DiscountFor computes the discount in whole currency units, rounded to the
// nearest unit. The discount never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	if c == nil || subtotal <= 0 {
		return 0
	}
	discount := decimal.NewFromInt(subtotal).
		Mul(c.PercentOff).
		Div(hundred).
		Round(0).
		IntPart()
	if discount > subtotal {
		return subtotal
	}
	return discount
}
