package store

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"chat-service/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const searchLimit = 20

// RegisterUser validates and stores a new identity. The username is
// normalized to lowercase before the uniqueness check, so "MyName" and
// "myname" collide.
func (s *Store) RegisterUser(phone, username, name, password, otpSecret string) (*model.User, error) {
	phone = strings.TrimSpace(phone)
	username = strings.ToLower(strings.TrimSpace(username))
	name = strings.TrimSpace(name)

	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := s.db.Model(&model.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicatePhone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:   username,
		Phone:      phone,
		Password:   string(hash),
		Name:       name,
		LastSeen:   time.Now(),
		Otp_secret: otpSecret,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the checks above; the
		// unique indexes still hold, surface it as the duplicate it is.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(username, phone)
		}
		return nil, err
	}
	return &user, nil
}

// duplicateError reports which unique column a failed insert collided on.
func (s *Store) duplicateError(username, phone string) error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return ErrDuplicateUsername
	}
	return ErrDuplicatePhone
}

// Authenticate matches the login against the phone verbatim or the
// username case-insensitively, checks the password and marks the user
// online.
func (s *Store) Authenticate(login, password string) (*model.User, error) {
	var user model.User
	err := s.db.Where("phone = ? OR username = ?", login, strings.ToLower(login)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Online = true
	user.LastSeen = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPassword re-verifies the password of an already authenticated user.
func (s *Store) CheckPassword(userID uint, password string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Store) GetUser(id uint) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetOffline records a logout: presence off, last seen now.
func (s *Store) SetOffline(userID uint) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"online": false, "last_seen": time.Now()}).Error
}

func (s *Store) SetOtpEnabled(userID uint, enabled bool) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("otp_enabled", enabled).Error
}

// UpdateProfile changes the display name and, when given, username and bio.
// Omitted (nil) fields pass through unchanged.
func (s *Store) UpdateProfile(userID uint, name string, username, bio *string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name

	if username != nil {
		next := strings.ToLower(strings.TrimSpace(*username))
		if !usernamePattern.MatchString(next) {
			return nil, ErrInvalidUsername
		}
		if next != user.Username {
			var count int64
			if err := s.db.Model(&model.User{}).Where("username = ?", next).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrDuplicateUsername
			}
			user.Username = next
		}
	}
	if bio != nil {
		user.Bio = *bio
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers matches the query against usernames case-insensitively and
// display names case-sensitively. The requester never appears in the
// result; at most 20 rows come back.
func (s *Store) SearchUsers(requesterID uint, query string) ([]UserRef, error) {
	var users []model.User
	err := s.db.
		Where("id <> ?", requesterID).
		Where("username LIKE ? OR name LIKE ?", "%"+strings.ToLower(query)+"%", "%"+query+"%").
		Order("username ASC").
		Limit(searchLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	refs := make([]UserRef, 0, len(users))
	for i := range users {
		refs = append(refs, userRef(&users[i]))
	}
	return refs, nil
}
