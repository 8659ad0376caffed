package controller

import (
	"errors"

	"chat-service/store"
	"chat-service/utils"

	"github.com/gofiber/fiber/v2"
)

var Store *store.Store

// SetStore wires the persistence layer in from main.
func SetStore(s *store.Store) {
	Store = s
}

func session(c *fiber.Ctx) *utils.TokenMetadata {
	return c.Locals("session").(*utils.TokenMetadata)
}

func success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}

// storeError maps the store's expected failures onto HTTP statuses.
// Anything unrecognized is an internal error and carries no detail out.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, store.ErrNotMember):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Invalid login or password")
	case errors.Is(err, store.ErrDuplicateUsername),
		errors.Is(err, store.ErrDuplicatePhone),
		errors.Is(err, store.ErrInvalidUsername),
		errors.Is(err, store.ErrPasswordTooShort),
		errors.Is(err, store.ErrPhoneRequired),
		errors.Is(err, store.ErrNameRequired),
		errors.Is(err, store.ErrChatWithSelf),
		errors.Is(err, store.ErrChatNameRequired),
		errors.Is(err, store.ErrEmptyMessage),
		errors.Is(err, store.ErrReplyNotInChat):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}
