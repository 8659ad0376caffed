package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"chat-service/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func pairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("p:%d:%d", a, b)
}

// FindOrCreatePrivateChat returns the private chat between the two users,
// creating it on first request. The unique pair key on chats makes the
// check-then-insert safe under concurrent calls: whoever loses the insert
// reads back the winner's row.
func (s *Store) FindOrCreatePrivateChat(requesterID, targetID uint) (*model.Chat, error) {
	if requesterID == targetID {
		return nil, ErrChatWithSelf
	}
	if _, err := s.GetUser(targetID); err != nil {
		return nil, err
	}

	key := pairKey(requesterID, targetID)
	chat := model.Chat{
		Type:      model.ChatTypePrivate,
		CreatorID: requesterID,
		PairKey:   &key,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).Create(&chat)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race or the chat already existed; read the winner.
			return tx.Where("pair_key = ?", key).First(&chat).Error
		}
		now := time.Now()
		members := []model.ChatMember{
			{ChatID: chat.ID, UserID: requesterID, Role: model.RoleMember, JoinedAt: now},
			{ChatID: chat.ID, UserID: targetID, Role: model.RoleMember, JoinedAt: now},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateGroupChat creates a named group (or channel) with the requester as
// its owner and every listed user as a plain member.
func (s *Store) CreateGroupChat(creatorID uint, name, chatType string, memberIDs []uint) (*model.Chat, error) {
	if name == "" {
		return nil, ErrChatNameRequired
	}
	if chatType != model.ChatTypeChannel {
		chatType = model.ChatTypeGroup
	}

	chat := model.Chat{
		Type:      chatType,
		Name:      name,
		CreatorID: creatorID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		now := time.Now()
		members := []model.ChatMember{
			{ChatID: chat.ID, UserID: creatorID, Role: model.RoleOwner, JoinedAt: now},
		}
		for _, id := range memberIDs {
			if id == creatorID {
				continue
			}
			members = append(members, model.ChatMember{
				ChatID: chat.ID, UserID: id, Role: model.RoleMember, JoinedAt: now,
			})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// AddGroupMember adds a user to a group or channel. Only the chat's owner
// or an admin may do that.
func (s *Store) AddGroupMember(chatID, requesterID, userID uint) error {
	var chat model.Chat
	err := s.db.First(&chat, chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if chat.Type == model.ChatTypePrivate {
		return ErrForbidden
	}

	var membership model.ChatMember
	err = s.db.Where("chat_id = ? AND user_id = ?", chatID, requesterID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotMember
	}
	if err != nil {
		return err
	}
	if membership.Role != model.RoleOwner && membership.Role != model.RoleAdmin {
		return ErrForbidden
	}

	if _, err := s.GetUser(userID); err != nil {
		return err
	}

	member := model.ChatMember{
		ChatID:   chatID,
		UserID:   userID,
		Role:     model.RoleMember,
		JoinedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
}

// IsMember reports whether the user belongs to the chat.
func (s *Store) IsMember(chatID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListChatsForUser builds the chat list: full roster, last visible message,
// and for private chats the counterpart's name and avatar instead of the
// chat's own. Ordered by last activity, newest first; chats without
// messages rank by their creation time on the same axis.
func (s *Store) ListChatsForUser(userID uint) ([]ChatSummary, error) {
	var memberships []model.ChatMember
	if err := s.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(memberships))
	activity := make(map[uint]time.Time, len(memberships))

	for _, membership := range memberships {
		var chat model.Chat
		if err := s.db.First(&chat, membership.ChatID).Error; err != nil {
			return nil, err
		}

		var roster []model.ChatMember
		if err := s.db.Where("chat_id = ?", chat.ID).Preload("User").Find(&roster).Error; err != nil {
			return nil, err
		}

		summary := ChatSummary{
			Id:          chat.ID,
			Type:        chat.Type,
			Name:        chat.Name,
			Description: chat.Description,
			Avatar:      chat.Avatar,
			Created:     chat.CreatedAt,
		}
		for i := range roster {
			summary.Members = append(summary.Members, ChatMemberView{
				UserRef: userRef(&roster[i].User),
				Role:    roster[i].Role,
				Joined:  roster[i].JoinedAt,
			})
			if chat.Type == model.ChatTypePrivate && roster[i].UserID != userID {
				summary.Name = roster[i].User.Name
				summary.Avatar = roster[i].User.Avatar
			}
		}

		var last model.Message
		err := s.db.Where("chat_id = ? AND deleted = ?", chat.ID, false).
			Order("created_at DESC, id DESC").
			Preload("Sender").
			First(&last).Error
		switch {
		case err == nil:
			view := messageView(&last)
			summary.LastMessage = &view
			activity[chat.ID] = last.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			activity[chat.ID] = chat.CreatedAt
		default:
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return activity[summaries[i].Id].After(activity[summaries[j].Id])
	})
	return summaries, nil
}
