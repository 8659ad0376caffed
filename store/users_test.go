package store

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserNormalizesUsername(t *testing.T) {
	s := newTestStore(t)

	user, err := s.RegisterUser("70001", "Abc_123", "Abc", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "abc_123", user.Username)
}

func TestRegisterUserRejectsBadInput(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterUser("70001", "abc def", "Abc", "secret123", "")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = s.RegisterUser("70001", "abc", "Abc", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = s.RegisterUser("", "abc", "Abc", "secret123", "")
	assert.ErrorIs(t, err, ErrPhoneRequired)

	_, err = s.RegisterUser("70001", "abc", "  ", "secret123", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRegisterUserPasswordLengthCountsRunes(t *testing.T) {
	s := newTestStore(t)

	// Five runes but nine bytes; still too short.
	_, err := s.RegisterUser("70001", "abc", "Abc", "ññññ1", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = s.RegisterUser("70001", "abc", "Abc", "ñññññ1", "")
	assert.NoError(t, err)
}

func TestRegisterUserConcurrentDuplicate(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	phones := []string{"70001", "70002"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.RegisterUser(phones[i], "samename", "User", "secret123", "")
		}(i)
	}
	wg.Wait()

	// Exactly one registration wins; the loser sees the duplicate,
	// not a raw driver error.
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrDuplicateUsername)
	} else {
		require.NoError(t, errs[1])
		assert.ErrorIs(t, errs[0], ErrDuplicateUsername)
	}
}

func TestDuplicateErrorIdentifiesColumn(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "taken", "70001")

	assert.ErrorIs(t, s.duplicateError("taken", "70999"), ErrDuplicateUsername)
	assert.ErrorIs(t, s.duplicateError("free", "70001"), ErrDuplicatePhone)
}

func TestRegisterUserDuplicateUsernameAnyCase(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterUser("70001", "myname", "First", "secret123", "")
	require.NoError(t, err)

	_, err = s.RegisterUser("70002", "MyName", "Second", "secret123", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterUserDuplicatePhone(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterUser("70001", "first", "First", "secret123", "")
	require.NoError(t, err)

	_, err = s.RegisterUser("70001", "second", "Second", "secret123", "")
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestRegisterUserHashesPassword(t *testing.T) {
	s := newTestStore(t)

	user, err := s.RegisterUser("70001", "alice", "Alice", "secret123", "")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"), "expected a bcrypt hash, got %q", user.Password)
}

func TestAuthenticateUsernameCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterUser("70001", "myname", "My Name", "secret123", "")
	require.NoError(t, err)

	user, err := s.Authenticate("MyName", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "myname", user.Username)
	assert.True(t, user.Online)
}

func TestAuthenticatePhoneVerbatim(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterUser("70001", "alice", "Alice", "secret123", "")
	require.NoError(t, err)

	_, err = s.Authenticate("70001", "secret123")
	assert.NoError(t, err)

	_, err = s.Authenticate("70009", "secret123")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Authenticate("70001", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetOfflineClearsPresence(t *testing.T) {
	s := newTestStore(t)

	registered, err := s.RegisterUser("70001", "alice", "Alice", "secret123", "")
	require.NoError(t, err)

	_, err = s.Authenticate("alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.SetOffline(registered.ID))

	user, err := s.GetUser(registered.ID)
	require.NoError(t, err)
	assert.False(t, user.Online)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "alice", "70001")
	seedUser(t, s, "taken", "70002")

	_, err := s.UpdateProfile(user.ID, "  ", nil, nil)
	assert.ErrorIs(t, err, ErrNameRequired)

	// Omitted username and bio pass through unchanged.
	updated, err := s.UpdateProfile(user.ID, "Alice B", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice", updated.Username)

	taken := "Taken"
	_, err = s.UpdateProfile(user.ID, "Alice B", &taken, nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	next := "Alice_2"
	bio := "hello there"
	updated, err = s.UpdateProfile(user.ID, "Alice B", &next, &bio)
	require.NoError(t, err)
	assert.Equal(t, "alice_2", updated.Username)
	assert.Equal(t, "hello there", updated.Bio)
}

func TestSearchUsersExcludesRequester(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", "70001")
	seedUser(t, s, "alice_jr", "70002")

	refs, err := s.SearchUsers(alice.ID, "alice")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "alice_jr", refs[0].Username)
}

func TestSearchUsersUsernameCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	requester := seedUser(t, s, "zzz", "70000")
	seedUser(t, s, "bob_the_builder", "70001")

	refs, err := s.SearchUsers(requester.ID, "BOB")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "bob_the_builder", refs[0].Username)
}

func TestSearchUsersNameCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	requester := seedUser(t, s, "zzz", "70000")

	bob := seedUser(t, s, "b1", "70001")
	bob.Name = "Robert"
	require.NoError(t, s.db.Save(bob).Error)

	refs, err := s.SearchUsers(requester.ID, "Robert")
	require.NoError(t, err)
	require.Len(t, refs, 1)

	refs, err = s.SearchUsers(requester.ID, "robert")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestSearchUsersCapped(t *testing.T) {
	s := newTestStore(t)
	users := seedUsers(t, s, 25)

	refs, err := s.SearchUsers(users[0].ID, "user")
	require.NoError(t, err)
	assert.Len(t, refs, searchLimit)
}
