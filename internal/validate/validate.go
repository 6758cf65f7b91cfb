package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{5,15}$`)
	reKind  = regexp.MustCompile(`^[a-z]{1,32}$`)
)

// Slug validates a URL-safe identifier for categories and products.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Kind validates the product-kind segment of catalog URLs. Registry lookup
// decides whether it actually exists.
func Kind(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reKind.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePhone.MatchString(s)
}

// Qty clamps a form quantity to [1,50].
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// ID parses a positive numeric row id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Title validates a displayable product or category name.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 255 {
		return "", false
	}
	return s, true
}

// Price parses a non-negative decimal string with at most two fraction digits.
func Price(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	whole, frac, found := strings.Cut(s, ".")
	if whole == "" {
		return "", false
	}
	if _, err := strconv.ParseUint(whole, 10, 32); err != nil {
		return "", false
	}
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return "", false
		}
		if _, err := strconv.ParseUint(frac, 10, 8); err != nil {
			return "", false
		}
	}
	return s, true
}

func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
