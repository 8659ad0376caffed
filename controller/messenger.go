package controller

import (
	"github.com/gofiber/fiber/v2"
)

type MessengerSendInput struct {
	Chat    uint   `json:"chat"`
	Text    string `json:"text"`
	ReplyTo *uint  `json:"reply_to"`
}

type MessengerEditInput struct {
	Text string `json:"text"`
}

func MessengerSendMessage(c *fiber.Ctx) error {
	input := new(MessengerSendInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	msg, err := Store.SendMessage(input.Chat, session(c).Id, input.Text, input.ReplyTo)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"id":      msg.ID,
		"created": msg.CreatedAt,
	})
}

func MessengerEditMessage(c *fiber.Ctx) error {
	messageId, err := c.ParamsInt("id")
	if err != nil || messageId <= 0 {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	input := new(MessengerEditInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	msg, err := Store.EditMessage(uint(messageId), session(c).Id, input.Text)
	if err != nil {
		return storeError(c, err)
	}

	return success(c, fiber.Map{
		"id":     msg.ID,
		"edited": msg.Edited,
	})
}

func MessengerDeleteMessage(c *fiber.Ctx) error {
	messageId, err := c.ParamsInt("id")
	if err != nil || messageId <= 0 {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if err := Store.DeleteMessage(uint(messageId), session(c).Id); err != nil {
		return storeError(c, err)
	}

	return success(c, nil)
}

// MessengerMessages pages a chat's history ascending by creation time.
// Polling clients pass ?after=<last seen id> to fetch only what is new.
func MessengerMessages(c *fiber.Ctx) error {
	chatId, err := c.ParamsInt("chat")
	if err != nil || chatId <= 0 {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	limit := c.QueryInt("limit")
	after := c.QueryInt("after")
	if after < 0 {
		after = 0
	}

	messages, err := Store.ListMessages(uint(chatId), session(c).Id, limit, uint(after))
	if err != nil {
		return storeError(c, err)
	}

	return success(c, messages)
}
