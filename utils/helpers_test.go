package utils

import (
	"testing"
	"time"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "mobile nine digits", phone: "071234567", valid: true},
		{name: "mobile ten digits", phone: "0712345678", valid: true},
		{name: "landline", phone: "0114567890", valid: true},
		{name: "missing leading zero", phone: "771234567", valid: false},
		{name: "second digit zero", phone: "0012345678", valid: false},
		{name: "too short", phone: "07123456", valid: false},
		{name: "too long", phone: "07123456789", valid: false},
		{name: "contains letters", phone: "07123456a8", valid: false},
		{name: "empty", phone: "", valid: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidPhoneNumber(tc.phone); got != tc.valid {
				t.Fatalf("IsValidPhoneNumber(%q) = %v, want %v", tc.phone, got, tc.valid)
			}
		})
	}
}

func TestStripNonDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "077-123 4567", want: "0771234567"},
		{input: "(077) 123.4567", want: "0771234567"},
		{input: "0771234567", want: "0771234567"},
		{input: "", want: ""},
	}

	for _, tc := range tests {
		if got := StripNonDigits(tc.input); got != tc.want {
			t.Fatalf("StripNonDigits(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatCode(t *testing.T) {
	tests := []struct {
		prefix string
		n      int
		want   string
	}{
		{prefix: StudentCodePrefix, n: 1, want: "STU001"},
		{prefix: StudentCodePrefix, n: 42, want: "STU042"},
		{prefix: IndexNumberPrefix, n: 999, want: "IDX999"},
		{prefix: StudentCodePrefix, n: 1000, want: "STU1000"},
	}

	for _, tc := range tests {
		if got := FormatCode(tc.prefix, tc.n); got != tc.want {
			t.Fatalf("FormatCode(%q, %d) = %q, want %q", tc.prefix, tc.n, got, tc.want)
		}
	}
}

func TestMaxNumericSuffix(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  int
	}{
		{name: "empty", codes: nil, want: 0},
		{name: "sequential", codes: []string{"STU001", "STU002", "STU003"}, want: 3},
		{name: "with gaps", codes: []string{"STU001", "STU005", "STU003"}, want: 5},
		{name: "ignores other prefixes", codes: []string{"STU002", "IDX009"}, want: 2},
		{name: "ignores malformed", codes: []string{"STU00X", "STU", "STU004"}, want: 4},
		{name: "wide suffix", codes: []string{"STU1000"}, want: 1000},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxNumericSuffix(tc.codes, StudentCodePrefix); got != tc.want {
				t.Fatalf("MaxNumericSuffix(%v) = %d, want %d", tc.codes, got, tc.want)
			}
		})
	}
}

func TestUTCDayWindow(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC the previous calendar day there
	loc := time.FixedZone("UTC+2", 2*3600)
	input := time.Date(2026, 3, 15, 23, 30, 0, 0, loc)

	start, end := UTCDayWindow(input)

	wantStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("window start = %v, want %v", start, wantStart)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("window length = %v, want 24h", got)
	}
}

func TestUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	input := time.Date(2026, 1, 1, 22, 15, 0, 0, loc) // 03:15 Jan 2 UTC

	got := UTCDate(input)
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("UTCDate = %v, want %v", got, want)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckPassword("secret123", hash); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatalf("wrong password accepted")
	}
}
