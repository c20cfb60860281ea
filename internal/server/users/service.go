// Package users contains the account model, the credential store, and the
// Service that orchestrates registration, login, and session resolution.
package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/autotransformers/site/internal/common"
	"github.com/autotransformers/site/internal/cryptox"
	"github.com/google/uuid"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionRegistry is the session lifecycle the service depends on.
type SessionRegistry interface {
	Create(userID string) (string, error)
	Validate(id string) (string, bool)
	Destroy(id string)
}

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Service implements the authentication operations on top of a credential
// store and a session registry.
type Service struct {
	repo      Repository
	sessions  SessionRegistry
	decoyHash string
}

// NewService constructs a Service. The decoy hash is verified against when a
// login targets an unknown email, so that "no such user" and "wrong
// password" take comparable time.
func NewService(repo Repository, sessions SessionRegistry) (*Service, error) {
	decoy, err := cryptox.HashPassword("decoy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("prepare decoy hash: %w", err)
	}
	return &Service{repo: repo, sessions: sessions, decoyHash: decoy}, nil
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, hashes the password, and inserts the new
// account. Validation failures surface as common.ErrFieldsRequired,
// common.ErrEmailInvalid, or common.ErrPasswordTooShort; duplicates as
// common.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if firstName == "" || lastName == "" || email == "" || phone == "" || in.Password == "" {
		return nil, common.ErrFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, common.ErrEmailInvalid
	}
	if len(in.Password) < minPasswordLength {
		return nil, common.ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials. An unknown email and a wrong password are
// indistinguishable to the caller: both return common.ErrInvalidCredentials,
// and the unknown-email path still performs a hash verification so the two
// take comparable time.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrFieldsRequired
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			cryptox.VerifyPassword(password, s.decoyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// StartSession creates a server-side session for the user.
func (s *Service) StartSession(userID string) (string, error) {
	return s.sessions.Create(userID)
}

// CurrentUser resolves a session id to its account. Expired or unknown
// sessions and sessions whose user has vanished all collapse to
// common.ErrUnauthenticated.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*User, error) {
	userID, ok := s.sessions.Validate(sessionID)
	if !ok {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}

// EndSession destroys a session. Unknown ids are ignored.
func (s *Service) EndSession(sessionID string) {
	s.sessions.Destroy(sessionID)
}
