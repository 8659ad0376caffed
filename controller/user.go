package controller

import (
	"strings"

	"chat-service/model"

	"github.com/gofiber/fiber/v2"
)

type UserUpdateInput struct {
	Name     string  `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

func profilePayload(user *model.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"created":   user.CreatedAt.Unix(),
		"username":  user.Username,
		"phone":     user.Phone,
		"name":      user.Name,
		"bio":       user.Bio,
		"avatar":    user.Avatar,
		"online":    user.Online,
		"last_seen": user.LastSeen,
		"otp":       user.Otp_enabled,
	}
}

func UserProfile(c *fiber.Ctx) error {
	user, err := Store.GetUser(session(c).Id)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, profilePayload(user))
}

func UserUpdateProfile(c *fiber.Ctx) error {
	input := new(UserUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	user, err := Store.UpdateProfile(session(c).Id, input.Name, input.Username, input.Bio)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, profilePayload(user))
}

func UserSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fail(c, fiber.StatusBadRequest, "Search query is required")
	}

	users, err := Store.SearchUsers(session(c).Id, query)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, users)
}
