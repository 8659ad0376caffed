package controller

import (
	"github.com/gofiber/fiber/v2"
)

type ChatCreatePrivateInput struct {
	UserId uint `json:"user_id"`
}

type ChatCreateGroupInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Members []uint `json:"members"`
}

type ChatAddMemberInput struct {
	UserId uint `json:"user_id"`
}

// ChatCreatePrivate is idempotent: asking twice for the same counterpart
// returns the same chat id.
func ChatCreatePrivate(c *fiber.Ctx) error {
	input := new(ChatCreatePrivateInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	chat, err := Store.FindOrCreatePrivateChat(session(c).Id, input.UserId)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"id":   chat.ID,
		"type": chat.Type,
	})
}

func ChatCreateGroup(c *fiber.Ctx) error {
	input := new(ChatCreateGroupInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	chat, err := Store.CreateGroupChat(session(c).Id, input.Name, input.Type, input.Members)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"id":   chat.ID,
		"type": chat.Type,
	})
}

func ChatAddMember(c *fiber.Ctx) error {
	chatId, err := c.ParamsInt("id")
	if err != nil || chatId <= 0 {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	input := new(ChatAddMemberInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if err := Store.AddGroupMember(uint(chatId), session(c).Id, input.UserId); err != nil {
		return storeError(c, err)
	}

	return success(c, nil)
}

func ChatList(c *fiber.Ctx) error {
	chats, err := Store.ListChatsForUser(session(c).Id)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, chats)
}
