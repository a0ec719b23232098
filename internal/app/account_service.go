package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"instructo-gateway/internal/model"
	"instructo-gateway/internal/pkg/jwtutil"
	"instructo-gateway/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("incorrect username or password")
	ErrUserNotFound      = errors.New("user not found")
)

// UserStore is the slice of the user repository the account service
// needs; tests substitute a fake.
type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	Save(user *model.User) error
	DeleteByUsername(username string) error
}

// AccountService owns signup, login, profile mutation and the per-user
// language entries. All identity-bound operations take the username
// extracted from a validated token, never one from a request body.
type AccountService struct {
	userStore     UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type UpdateInput struct {
	// CurrentUsername is the authenticated identity. Username and
	// Password are the new desired values.
	CurrentUsername string
	Username        string
	Password        string
}

func NewAccountService(userStore UserStore, jwtSecret string, jwtExpiration time.Duration) *AccountService {
	return &AccountService{
		userStore:     userStore,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Signup rejects duplicate usernames with an advisory lookup first; the
// unique index on users.username catches the two-concurrent-signups
// race, and that outcome maps to the same ErrUsernameExists.
func (s *AccountService) Signup(input SignupInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userStore.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Languages:    model.LanguageList{},
	}
	if err := s.userStore.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return user, nil
}

// Login deliberately returns the same ErrInvalidCredential for an
// unknown username and a wrong password.
func (s *AccountService) Login(input LoginInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.userStore.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token failed: %w", err)
	}
	return token, nil
}

// Update replaces the authenticated user's username and password.
func (s *AccountService) Update(input UpdateInput) error {
	newUsername := strings.TrimSpace(input.Username)
	newPassword := strings.TrimSpace(input.Password)
	if newUsername == "" || newPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.userStore.GetByUsername(input.CurrentUsername)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if newUsername != user.Username {
		taken, err := s.userStore.GetByUsername(newUsername)
		if err != nil {
			return err
		}
		if taken != nil {
			return ErrUsernameExists
		}
		user.Username = newUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userStore.Save(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// Delete removes the authenticated user's record. Deleting an already
// deleted account is not an error.
func (s *AccountService) Delete(username string) error {
	return s.userStore.DeleteByUsername(username)
}

func (s *AccountService) GetByUsername(username string) (*model.User, error) {
	return s.userStore.GetByUsername(username)
}

// AddLanguage appends the entry to the user's language list. Duplicate
// entries for the same language are allowed.
func (s *AccountService) AddLanguage(username string, entry model.Language) error {
	if strings.TrimSpace(entry.Language) == "" {
		return ErrInvalidInput
	}

	user, err := s.userStore.GetByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.Languages = append(user.Languages, entry)
	return s.userStore.Save(user)
}

// RemoveLanguage drops every entry whose language matches name, case
// insensitively. Removing zero entries still succeeds.
func (s *AccountService) RemoveLanguage(username, name string) error {
	user, err := s.userStore.GetByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	kept := user.Languages[:0]
	for _, entry := range user.Languages {
		if !entry.MatchesName(name) {
			kept = append(kept, entry)
		}
	}
	user.Languages = kept
	return s.userStore.Save(user)
}
