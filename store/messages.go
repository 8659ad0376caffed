package store

import (
	"errors"
	"strings"

	"chat-service/model"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 200
	maxPageSize     = 500
)

// SendMessage stores a trimmed message from a chat member. A reply target
// must be an existing message of the same chat.
func (s *Store) SendMessage(chatID, senderID uint, text string, replyToID *uint) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	member, err := s.IsMember(chatID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	if replyToID != nil {
		var target model.Message
		err := s.db.First(&target, *replyToID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if target.ChatID != chatID {
			return nil, ErrReplyNotInChat
		}
	}

	msg := model.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		ReplyToID: replyToID,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessage replaces the text of a live message. Only the original
// sender may edit; anyone else gets ErrForbidden.
func (s *Store) EditMessage(messageID, editorID uint, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	var msg model.Message
	err := s.db.First(&msg, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if msg.SenderID != editorID {
		return nil, ErrForbidden
	}
	if msg.Deleted {
		return nil, ErrNotFound
	}

	msg.Text = text
	msg.Edited = true
	if err := s.db.Save(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage soft-deletes: the deleted flag goes up, the text stays in
// the row. Sender-only, like EditMessage.
func (s *Store) DeleteMessage(messageID, editorID uint) error {
	var msg model.Message
	err := s.db.First(&msg, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if msg.SenderID != editorID {
		return ErrForbidden
	}

	msg.Deleted = true
	return s.db.Save(&msg).Error
}

// ListMessages pages through a chat's history ascending by creation time
// (id breaks timestamp ties, keeping insertion order). afterID is the
// cursor: zero starts at the beginning, otherwise the page begins past
// that message — which is also what a polling client passes to pick up
// only what is new.
func (s *Store) ListMessages(chatID, requesterID uint, limit int, afterID uint) ([]MessageView, error) {
	member, err := s.IsMember(chatID, requesterID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	query := s.db.Where("chat_id = ?", chatID)
	if afterID > 0 {
		query = query.Where("id > ?", afterID)
	}

	var msgs []model.Message
	if err := query.Order("created_at ASC, id ASC").Limit(limit).Preload("Sender").Find(&msgs).Error; err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, messageView(&msgs[i]))
	}
	return views, nil
}
