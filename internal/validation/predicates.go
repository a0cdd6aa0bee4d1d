// Package validation implements the field predicates used by the checkout
// validation registry. Predicates never panic and treat malformed input as invalid.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cyphera/storefront/internal/mask"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	EmailRegex      = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)
	PostalCodeRegex = regexp.MustCompile(`^\d{5}-\d{3}$`)
	BirthDateRegex  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	ExpiryRegex     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	nameTokenRegex  = regexp.MustCompile(`^\w{2,}$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// IsEmail reports whether s looks like a deliverable e-mail address
func IsEmail(s string) bool {
	return EmailRegex.MatchString(strings.TrimSpace(s))
}

// IsPostalCode reports whether s is a masked CEP (00000-000)
func IsPostalCode(s string) bool {
	return PostalCodeRegex.MatchString(s)
}

// IsTaxID validates a CPF: 11 digits, not all equal, with both check digits matching
func IsTaxID(s string) bool {
	digits := mask.Digits(s)
	if len(digits) != 11 {
		return false
	}
	if strings.Count(digits, digits[:1]) == len(digits) {
		return false
	}

	d := make([]int, len(digits))
	for i, r := range digits {
		d[i] = int(r - '0')
	}

	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// checkDigit computes a CPF verifier digit with weights descending from start
func checkDigit(digits []int, start int) int {
	sum := 0
	for i, v := range digits {
		sum += v * (start - i)
	}
	digit := 11 - (sum % 11)
	if digit > 9 {
		return 0
	}
	return digit
}

// IsCardExpiryValid reports whether an MM/YY expiry is still valid at now:
// the card expires after 23:59:59 on the last day of its month.
func IsCardExpiryValid(s string, now time.Time) bool {
	m := ExpiryRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}

	lastInstant := time.Date(2000+year, time.Month(month)+1, 0, 23, 59, 59, 0, now.Location())
	return lastInstant.After(now)
}

// NormalizeName strips diacritics and collapses whitespace
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(out, " "))
}

// IsFullName requires at least two name tokens of two or more word characters
func IsFullName(s string) bool {
	tokens := strings.Split(NormalizeName(s), " ")
	count := 0
	for _, tok := range tokens {
		if nameTokenRegex.MatchString(tok) {
			count++
		}
	}
	return count >= 2
}

// IsBirthDate validates dd/mm/yyyy and rejects dates that do not exist
func IsBirthDate(s string) bool {
	m := BirthDateRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// IsPhone accepts Brazilian landline (10 digits) and mobile (11 digits) numbers
func IsPhone(s string) bool {
	n := len(mask.Digits(s))
	return n == 10 || n == 11
}

// IsCardNumber checks length and the Luhn checksum
func IsCardNumber(s string) bool {
	digits := mask.Digits(s)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		v := int(digits[i] - '0')
		if double {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
		double = !double
	}
	return sum%10 == 0
}

// IsSecurityCode accepts 3 or 4 digit CVVs
func IsSecurityCode(s string) bool {
	if mask.Digits(s) != s {
		return false
	}
	return len(s) == 3 || len(s) == 4
}

// IsNotBlank reports whether s has any non-space content
func IsNotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
