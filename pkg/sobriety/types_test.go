package sobriety

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("got %s want 2024-02-29", d)
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatal("expected error for impossible date")
	}
}

func TestDate_DaysSince(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", 1},
		{"2024-02-28", "2024-03-01", 2},  // leap year
		{"2023-02-28", "2023-03-01", 1},  // non-leap year
		{"2024-01-02", "2024-01-01", -1}, // signed
		{"2023-12-31", "2024-12-31", 366},
	}
	for _, tc := range tests {
		got := MustDate(tc.to).DaysSince(MustDate(tc.from))
		if got != tc.want {
			t.Errorf("%s -> %s: got %d want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDate_AddDays(t *testing.T) {
	if got := MustDate("2024-02-28").AddDays(1); got.String() != "2024-02-29" {
		t.Fatalf("got %s want 2024-02-29", got)
	}
	if got := MustDate("2024-12-31").AddDays(1); got.String() != "2025-01-01" {
		t.Fatalf("got %s want 2025-01-01", got)
	}
}

func TestDate_JSONNull(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"id":"u1","start_date":null}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !p.StartDate.IsZero() {
		t.Fatalf("expected zero start date, got %s", p.StartDate)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"id":"u1","start_date":null}` {
		t.Fatalf("got %s", out)
	}
}
