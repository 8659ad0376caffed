package middleware

import (
	"chat-service/utils"

	"github.com/gofiber/fiber/v2"
)

// OTP blocks tokens whose 2FA validation is still pending.
func OTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := c.Locals("session").(*utils.TokenMetadata)

		if session.Otp {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{
					"status":  "error",
					"message": "2FA required",
					"data":    nil,
				})
		}

		return c.Next()
	}
}
