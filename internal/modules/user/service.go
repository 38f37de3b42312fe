// README: User service; registration, login and account lookup.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// SettingsBootstrapper seeds the default compensation policy for a new user.
type SettingsBootstrapper interface {
	CreateDefaults(ctx context.Context, userID string) error
}

// TokenIssuer signs an access token for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	store    Store
	settings SettingsBootstrapper
	tokens   TokenIssuer
}

func NewService(store Store, settings SettingsBootstrapper, tokens TokenIssuer) *Service {
	return &Service{store: store, settings: settings, tokens: tokens}
}

// Register creates the account and its default settings row, and returns
// the new user together with a fresh token.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, "", err
	}
	if err := s.settings.CreateDefaults(ctx, u.ID); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.Get(ctx, id)
}
