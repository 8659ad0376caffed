package store

import (
	"time"

	"chat-service/model"
)

// UserRef is the identity slice of a user that other payloads embed.
type UserRef struct {
	Id       uint      `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"last_seen"`
}

type MessageView struct {
	Id      uint      `json:"id"`
	Chat    uint      `json:"chat"`
	Sender  UserRef   `json:"sender"`
	Text    string    `json:"text"`
	ReplyTo *uint     `json:"reply_to"`
	Edited  bool      `json:"edited"`
	Deleted bool      `json:"deleted"`
	Created time.Time `json:"created"`
}

type ChatMemberView struct {
	UserRef
	Role   string    `json:"role"`
	Joined time.Time `json:"joined"`
}

type ChatSummary struct {
	Id          uint             `json:"id"`
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Avatar      string           `json:"avatar"`
	Members     []ChatMemberView `json:"members"`
	LastMessage *MessageView     `json:"last_message"`
	Created     time.Time        `json:"created"`
}

func userRef(u *model.User) UserRef {
	return UserRef{
		Id:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Online:   u.Online,
		LastSeen: u.LastSeen,
	}
}

// messageView hides the text of soft-deleted messages; the row keeps it,
// consumers never see it.
func messageView(m *model.Message) MessageView {
	view := MessageView{
		Id:      m.ID,
		Chat:    m.ChatID,
		Sender:  userRef(&m.Sender),
		Text:    m.Text,
		ReplyTo: m.ReplyToID,
		Edited:  m.Edited,
		Deleted: m.Deleted,
		Created: m.CreatedAt,
	}
	if m.Deleted {
		view.Text = ""
	}
	return view
}
