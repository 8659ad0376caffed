package store

import (
	"fmt"
	"testing"

	"chat-service/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every pooled connection to :memory: would get its own database;
	// a single connection keeps concurrent test goroutines on one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Postgres LIKE is case-sensitive; make sqlite agree so the search
	// semantics under test match production.
	db.Exec("PRAGMA case_sensitive_like = ON")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Chat{},
		&model.ChatMember{},
		&model.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

// seedUser inserts a user directly, skipping the bcrypt work that
// registration tests cover separately.
func seedUser(t *testing.T, s *Store, username, phone string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Phone:    phone,
		Password: "not-a-real-hash",
		Name:     "User " + username,
	}
	if err := s.db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedUsers(t *testing.T, s *Store, n int) []*model.User {
	t.Helper()
	users := make([]*model.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, seedUser(t, s, fmt.Sprintf("user%03d", i), fmt.Sprintf("700%03d", i)))
	}
	return users
}
