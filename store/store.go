package store

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
)

// Expected failures of the operation surface. Controllers translate these
// into the JSON error envelope; anything else is an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrDuplicateUsername  = errors.New("username is already registered")
	ErrDuplicatePhone     = errors.New("phone is already registered")
	ErrInvalidUsername    = errors.New("username may contain only letters, digits and underscores")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPhoneRequired      = errors.New("phone is required")
	ErrNameRequired       = errors.New("name is required")
	ErrChatWithSelf       = errors.New("cannot start a chat with yourself")
	ErrChatNameRequired   = errors.New("chat name is required")
	ErrNotMember          = errors.New("user is not a member of this chat")
	ErrEmptyMessage       = errors.New("message text is required")
	ErrReplyNotInChat     = errors.New("replied message belongs to another chat")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Store bundles all persistence operations over one gorm handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
