package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`\d`)
	symbolPattern   = regexp.MustCompile("[!@#$%^&*(),.?\":{}|<>_\\-+=\\[\\]\\\\/`~]")
)

// ValidatePassword returns every violated strength rule, in rule order.
func ValidatePassword(password string) []string {
	var errs []string

	if utf8.RuneCountInString(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long.")
	}
	if !upperPattern.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter.")
	}
	if !lowerPattern.MatchString(password) {
		errs = append(errs, "Password must contain at least one lowercase letter.")
	}
	if !digitPattern.MatchString(password) {
		errs = append(errs, "Password must contain at least one digit.")
	}
	if !symbolPattern.MatchString(password) {
		errs = append(errs, "Password must contain at least one special character (!@#$%^&* etc.).")
	}

	return errs
}

// ValidateUsername returns every violated username rule, in rule order.
func ValidateUsername(username string) []string {
	var errs []string

	n := utf8.RuneCountInString(username)
	if n < 3 {
		errs = append(errs, "Username must be at least 3 characters long.")
	}
	if n > 30 {
		errs = append(errs, "Username must be less than 30 characters.")
	}
	if !usernamePattern.MatchString(username) {
		errs = append(errs, "Username can only contain letters, numbers, and underscores.")
	}

	return errs
}

// ValidateEmail returns an empty string for a well-formed address.
func ValidateEmail(email string) string {
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address."
	}
	return ""
}

// NormalizeEmail trims and lowercases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
