package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"instructo-gateway/internal/model"
	"instructo-gateway/internal/pkg/jwtutil"
	"instructo-gateway/internal/repository"
)

type fakeUserStore struct {
	users map[string]*model.User

	nextID    uint
	createErr error
	getErr    error
	saveErr   error
	deleteErr error

	deleteCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	copied.Languages = append(model.LanguageList{}, user.Languages...)
	return &copied, nil
}

func (f *fakeUserStore) Save(user *model.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for name, existing := range f.users {
		if existing.ID == user.ID && name != user.Username {
			delete(f.users, name)
		}
	}
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) DeleteByUsername(username string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.users, username)
	return nil
}

func newTestService(store UserStore) *AccountService {
	return NewAccountService(store, "test-secret", time.Hour)
}

func signupAlice(t *testing.T, svc *AccountService) {
	t.Helper()
	_, err := svc.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
}

func TestSignup_FreshUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, err := svc.Signup(SignupInput{Username: "alice", Email: "Alice@Example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, user)

	stored := store.users["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Empty(t, stored.Languages)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	original := *store.users["alice"]

	_, err := svc.Signup(SignupInput{Username: "alice", Email: "other@example.com", Password: "differentpw1"})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Equal(t, original, *store.users["alice"], "losing signup must not touch the original record")
}

func TestSignup_RaceLosesToUniqueIndex(t *testing.T) {
	// The advisory check passes but the insert hits the unique index:
	// the caller still sees a duplicate-username failure.
	store := newFakeUserStore()
	store.createErr = repository.ErrDuplicateUsername
	svc := newTestService(store)

	_, err := svc.Signup(SignupInput{Username: "alice", Email: "", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestSignup_StoreFailureSurfaced(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = errors.New("connection reset")
	svc := newTestService(store)

	_, err := svc.Signup(SignupInput{Username: "alice", Email: "", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameExists)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	token, err := svc.Login(LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	_, wrongPassword := svc.Login(LoginInput{Username: "alice", Password: "wrongpassword"})
	_, unknownUser := svc.Login(LoginInput{Username: "mallory", Password: "password123"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredential)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestUpdate_ReplacesUsernameAndPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	err := svc.Update(UpdateInput{CurrentUsername: "alice", Username: "alice2", Password: "newpassword1"})
	require.NoError(t, err)

	assert.Nil(t, store.users["alice"])
	updated := store.users["alice2"]
	require.NotNil(t, updated)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword1")))
}

func TestUpdate_UserVanished(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	err := svc.Update(UpdateInput{CurrentUsername: "ghost", Username: "ghost", Password: "newpassword1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate_NewUsernameTaken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)
	_, err := svc.Signup(SignupInput{Username: "bob", Email: "", Password: "password123"})
	require.NoError(t, err)

	err = svc.Update(UpdateInput{CurrentUsername: "alice", Username: "bob", Password: "newpassword1"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUpdate_SameUsernameRehashesOnly(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	err := svc.Update(UpdateInput{CurrentUsername: "alice", Username: "alice", Password: "newpassword1"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users["alice"].PasswordHash), []byte("newpassword1")))
}

func TestDelete_Idempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	require.NoError(t, svc.Delete("alice"))
	require.NoError(t, svc.Delete("alice"))
	assert.Equal(t, 2, store.deleteCalls)
}

func TestAddLanguage_AppendsAtEnd(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)
	require.NoError(t, svc.AddLanguage("alice", model.Language{Language: "Python", Level: "Beginner"}))

	entry := model.Language{Language: "Go", Level: "Intermediate"}
	require.NoError(t, svc.AddLanguage("alice", entry))

	languages := store.users["alice"].Languages
	require.Len(t, languages, 2)
	assert.Equal(t, entry, languages[1])
}

func TestAddLanguage_DuplicatesAllowed(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)

	entry := model.Language{Language: "Go", Level: "Intermediate"}
	require.NoError(t, svc.AddLanguage("alice", entry))
	require.NoError(t, svc.AddLanguage("alice", entry))

	assert.Len(t, store.users["alice"].Languages, 2)
}

func TestAddLanguage_UnknownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	err := svc.AddLanguage("ghost", model.Language{Language: "Go", Level: "Intermediate"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveLanguage_CaseInsensitive(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)
	require.NoError(t, svc.AddLanguage("alice", model.Language{Language: "Go", Level: "Beginner"}))
	require.NoError(t, svc.AddLanguage("alice", model.Language{Language: "Python", Level: "Advanced"}))
	require.NoError(t, svc.AddLanguage("alice", model.Language{Language: "GO", Level: "Intermediate"}))

	require.NoError(t, svc.RemoveLanguage("alice", "go"))

	languages := store.users["alice"].Languages
	require.Len(t, languages, 1)
	assert.Equal(t, "Python", languages[0].Language)
}

func TestRemoveLanguage_NoMatchStillSucceeds(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	signupAlice(t, svc)
	require.NoError(t, svc.AddLanguage("alice", model.Language{Language: "Python", Level: "Advanced"}))

	require.NoError(t, svc.RemoveLanguage("alice", "rust"))
	require.NoError(t, svc.RemoveLanguage("alice", "rust"))
	assert.Len(t, store.users["alice"].Languages, 1)
}

func TestRemoveLanguage_UnknownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	err := svc.RemoveLanguage("ghost", "go")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
