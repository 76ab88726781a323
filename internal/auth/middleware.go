package auth

import (
	"strings"

	"realtor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserNameKey  = "user_name"
	CtxUserEmailKey = "user_email"
	CtxUserRoleKey  = "user_role"
)

// Identity is the authenticated caller as seen by handlers and services.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   models.UserType
}

// User is the users row mirrored from the token claims. Phone is not
// carried by tokens and stays as stored.
func (i Identity) User() models.User {
	return models.User{ID: i.UserID, Name: i.Name, Email: i.Email, UserType: i.Role}
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		claims, err := ParseToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.Name)
		c.Locals(CtxUserEmailKey, claims.Email)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole lets the request through only if the caller has one of
// allowedRoles. Must run after JWTMiddleware.
func RequireRole(allowedRoles ...models.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserType)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "role information missing")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "forbidden resource")
	}
}

// CurrentUser returns the identity stored by JWTMiddleware.
func CurrentUser(c *fiber.Ctx) (Identity, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok || userID == 0 {
		return Identity{}, fiber.NewError(fiber.StatusUnauthorized, "user information missing")
	}

	id := Identity{UserID: userID}
	id.Name, _ = c.Locals(CtxUserNameKey).(string)
	id.Email, _ = c.Locals(CtxUserEmailKey).(string)
	id.Role, _ = c.Locals(CtxUserRoleKey).(models.UserType)
	return id, nil
}
