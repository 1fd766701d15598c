package payment

import (
	"regexp"
	"strings"
	"time"
)

var (
	cvcPattern     = regexp.MustCompile(`^\d{3}$`)
	monthPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	yearPattern    = regexp.MustCompile(`^\d{4}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	ccPattern      = regexp.MustCompile(`^\+\d{1,3}$`)
	phoneRawLength = regexp.MustCompile(`^[\d-]{8,20}$`)
)

// ValidCardNumber strips spaces and requires exactly 16 digits passing the
// Luhn mod-10 checksum.
func ValidCardNumber(number string) bool {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) != 16 {
		return false
	}
	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		c := cleaned[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidCVC requires exactly three digits.
func ValidCVC(cvc string) bool {
	return cvcPattern.MatchString(cvc)
}

// ValidExpMonth requires a two-digit month between 01 and 12.
func ValidExpMonth(month string) bool {
	return monthPattern.MatchString(month)
}

// ValidExpYear requires a four-digit year between the current year and the
// current year plus ten, inclusive.
func ValidExpYear(year string) bool {
	if !yearPattern.MatchString(year) {
		return false
	}
	num := 0
	for i := 0; i < len(year); i++ {
		num = num*10 + int(year[i]-'0')
	}
	current := time.Now().Year()
	return num >= current && num <= current+10
}

// ValidEmail accepts local@domain.tld shapes via a permissive ASCII pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone checks the country code (+ followed by 1-3 digits) and the
// number: after dropping everything but digits and hyphens the raw string
// must be 8-20 characters, and the digits alone must count 8-15.
func ValidPhone(countryCode, number string) bool {
	if !ccPattern.MatchString(countryCode) {
		return false
	}
	cleaned := keepRunes(number, func(r rune) bool { return r >= '0' && r <= '9' || r == '-' })
	digits := strings.ReplaceAll(cleaned, "-", "")
	return phoneRawLength.MatchString(cleaned) && len(digits) >= 8 && len(digits) <= 15
}
