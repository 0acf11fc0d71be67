package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"live-reservation/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type UserLayer interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
}

// CredentialChecker verifies member credentials against the users
// table. Passwords are stored and compared as-is; this type is the one
// place to change when the store moves to hashes.
type CredentialChecker struct {
	DB UserLayer
}

func NewCredentialChecker(db UserLayer) *CredentialChecker {
	return &CredentialChecker{DB: db}
}

func (c *CredentialChecker) Check(email, password string) (*models.User, error) {
	user, err := c.DB.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a member account with a unique email.
func (c *CredentialChecker) Register(email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, errors.New("email, password and name are required")
	}

	existing, err := c.DB.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Email:    email,
		Password: password,
		Name:     strings.TrimSpace(name),
	}
	if err := c.DB.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
