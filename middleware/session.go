package middleware

import (
	"chat-service/database"
	"chat-service/store"
	"chat-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session runs after JWT(): it rejects tokens revoked by signout and puts
// the verified claims into locals as *utils.TokenMetadata.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)

		revoked, err := store.NewTokenRevoker(database.Redis).IsRevoked(token.Raw)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Internal server error",
				"data":    nil,
			})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"data":    nil,
			})
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Locals("session", utils.MetadataFromClaims(claims))
		return c.Next()
	}
}
