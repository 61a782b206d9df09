// Package validation holds input rules shared by the services and seeders.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	specialRegex  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Usernames that collide with top-level API paths.
var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"channels":      {},
	"comments":      {},
	"health":        {},
	"metrics":       {},
	"playlists":     {},
	"subscriptions": {},
	"tweets":        {},
	"users":         {},
	"videos":        {},
}

// ValidateUsername checks the channel handle used in /channels/:username.
// Handles are lowercase.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters of lowercase letters, numbers, underscores or hyphens")
	}
	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}
	if _, reserved := reservedUsernames[username]; reserved {
		return fmt.Errorf("username is reserved")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces 12-128 characters with upper, lower, digit and
// special characters.
func ValidatePassword(password string) error {
	switch {
	case len(password) < 12:
		return fmt.Errorf("password must be at least 12 characters long")
	case len(password) > 128:
		return fmt.Errorf("password must not exceed 128 characters")
	case !strings.ContainsFunc(password, unicode.IsUpper):
		return fmt.Errorf("password must contain at least one uppercase letter")
	case !strings.ContainsFunc(password, unicode.IsLower):
		return fmt.Errorf("password must contain at least one lowercase letter")
	case !strings.ContainsFunc(password, unicode.IsDigit):
		return fmt.Errorf("password must contain at least one digit")
	case !specialRegex.MatchString(password):
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}
	return nil
}
