package pagination

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := Parse(original.Encode())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("created_at mismatch: %v != %v", parsed.CreatedAt, original.CreatedAt)
	}
	if parsed.ID != original.ID {
		t.Fatalf("id mismatch: %v != %v", parsed.ID, original.ID)
	}
}

func TestCursorTokenIsURLSafe(t *testing.T) {
	token := Cursor{CreatedAt: time.Now(), ID: uuid.New()}.Encode()
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token %q needs escaping in a query string", token)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, value := range []string{"!!!", "bm90LWEtY3Vyc29y", "MjAyNnwxMjM"} {
		if _, err := Parse(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestParseEmptyMeansFirstPage(t *testing.T) {
	cursor, err := Parse("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{-5: DefaultLimit, 0: DefaultLimit, 10: 10, MaxLimit: MaxLimit, 500: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("LimitWithBuffer(10) = %d, want 11", got)
	}
}
