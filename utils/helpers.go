package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Code prefixes for generated student identifiers
const (
	StudentCodePrefix = "STU"
	IndexNumberPrefix = "IDX"
)

// Mobile: 07XXXXXXXX (10 digits), landline: 0XXXXXXXX (9-10 digits).
// Leading 0, second digit 1-9, then 7-8 further digits.
var phonePattern = regexp.MustCompile(`^0[1-9]\d{7,8}$`)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// StripNonDigits removes everything except digits from a phone number
func StripNonDigits(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// IsValidPhoneNumber reports whether the number matches the national
// mobile/landline format. Callers strip formatting characters first.
func IsValidPhoneNumber(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	return phonePattern.MatchString(phone)
}

// FormatCode renders a sequence number as a zero-padded code, e.g. STU007.
// Values beyond 999 simply grow wider.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// MaxNumericSuffix scans existing codes for the highest numeric suffix under
// the given prefix. Codes with a foreign prefix or a non-numeric suffix are
// ignored, so the sequence is gap-tolerant. Used once to seed the counter row.
func MaxNumericSuffix(codes []string, prefix string) int {
	maxNumber := 0
	for _, code := range codes {
		if !strings.HasPrefix(code, prefix) || len(code) < len(prefix)+3 {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
	}
	return maxNumber
}

// UTCDayWindow returns the [start, end) instants of the UTC calendar day
// containing t. Day bucketing is UTC midnight to UTC midnight regardless of
// the institute's local timezone, keeping the duplicate check deterministic.
func UTCDayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// UTCDate truncates t to its UTC calendar day
func UTCDate(t time.Time) time.Time {
	start, _ := UTCDayWindow(t)
	return start
}
