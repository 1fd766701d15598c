package payment

import "strings"

// Per-field input filters. The same rules run client side on every keystroke;
// applying them again on the server keeps posted values canonical regardless
// of how the form was submitted.

// NormalizeCardNumber keeps digits only, caps at 16, and regroups into
// 4-digit chunks separated by spaces ("4242 4242 4242 4242").
func NormalizeCardNumber(s string) string {
	digits := keepRunes(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDigits keeps digits only, capped at max characters.
func NormalizeDigits(s string, max int) string {
	out := keepRunes(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// NormalizeCountryCode keeps digits and a leading plus sign, capped at 4 chars.
func NormalizeCountryCode(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

// NormalizePhoneNumber keeps digits and hyphens, capped at 15 chars.
func NormalizePhoneNumber(s string) string {
	out := keepRunes(s, func(r rune) bool { return r >= '0' && r <= '9' || r == '-' })
	if len(out) > 15 {
		out = out[:15]
	}
	return out
}

// NormalizeName keeps ASCII letters, spaces, and hyphens.
func NormalizeName(s string) string {
	return keepRunes(s, func(r rune) bool {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == ' ' || r == '-'
	})
}

// NormalizeEmail lower-cases and trims the address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keepRunes(s string, keep func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
