package coupons

import (
	"testing"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

func TestLookupKnownCodes(t *testing.T) {
	cases := []struct {
		code    string
		percent int64
	}{
		{"WELCOME10", 10},
		{"SUMMER20", 20},
		{"SALE30", 30},
		{"welcome10", 10},
		{" sale30 ", 30},
	}

	for _, tc := range cases {
		coupon, err := Lookup(tc.code)
		if err != nil {
			t.Fatalf("Lookup(%q) unexpected error: %v", tc.code, err)
		}
		if coupon.PercentOff.IntPart() != tc.percent {
			t.Fatalf("Lookup(%q) percent = %s, want %d", tc.code, coupon.PercentOff, tc.percent)
		}
	}
}

func TestLookupInvalidCode(t *testing.T) {
	for _, code := range []string{"", "BOGUS50", "WELCOME"} {
		_, err := Lookup(code)
		if err == nil {
			t.Fatalf("Lookup(%q) expected error", code)
		}
		if apperrors.As(err).Code() != apperrors.CodeValidation {
			t.Fatalf("Lookup(%q) code = %s, want validation", code, apperrors.As(err).Code())
		}
	}
}

func TestDiscountFor(t *testing.T) {
	welcome, _ := Lookup("WELCOME10")
	summer, _ := Lookup("SUMMER20")
	sale, _ := Lookup("SALE30")

	cases := []struct {
		coupon   *Coupon
		subtotal int64
		want     int64
	}{
		{welcome, 2000, 200},
		{summer, 2000, 400},
		{sale, 2000, 600},
		{welcome, 999, 100},
		{welcome, 0, 0},
		{nil, 2000, 0},
	}

	for _, tc := range cases {
		if got := tc.coupon.DiscountFor(tc.subtotal); got != tc.want {
			t.Fatalf("DiscountFor(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}
