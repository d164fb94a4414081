package middleware

import (
	"classroom-dashboard/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware requires a valid bearer token and stores its claims for
// the handlers below it.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, secret)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AdminMiddleware lets through users whose application role is one of
// adminRoles. It must run after AuthMiddleware.
func AdminMiddleware(adminRoles []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(adminRoles))
	for _, role := range adminRoles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if _, ok := allowed[claims.UserRole()]; !ok {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}
		return c.Next()
	}
}

func ClaimsFromContext(c *fiber.Ctx) (*utils.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}
