// Package middleware provides authentication, logging, tracing and rate limiting middleware.
package middleware

import (
	"context"
	"errors"
	"strings"

	"videotube/internal/config"
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

var errNoToken = errors.New("authorization header required")

// UserID returns the authenticated user id stored by AuthRequired or
// OptionalAuth, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	userID, err := userFromHeader(c.Get("Authorization"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(err.Error()))
	}

	setViewer(c, userID)
	return c.Next()
}

// OptionalAuth resolves the viewer identity when a valid bearer token is
// present and lets anonymous requests through. A token that is present but
// invalid is rejected so clients notice expired sessions.
func OptionalAuth(c *fiber.Ctx) error {
	userID, err := userFromHeader(c.Get("Authorization"))
	switch {
	case errors.Is(err, errNoToken):
		return c.Next()
	case err != nil:
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(err.Error()))
	}

	setViewer(c, userID)
	return c.Next()
}

// setViewer stores the user id in locals and in the request context so the
// context-aware logger tags every record with it.
func setViewer(c *fiber.Ctx, userID string) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

func userFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errNoToken
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	// Subject claim carries the user id (RFC 7519)
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("invalid token structure - missing subject")
	}
	if !models.ValidID(sub) {
		return "", errors.New("invalid user ID in token")
	}

	return sub, nil
}
