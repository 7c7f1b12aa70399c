package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/cryptox"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
)

const minPasswordLength = 6

type UserService struct {
	users users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{users: repo}
}

// Register creates an account with a freshly salted password key.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	if username == "" {
		return nil, fmt.Errorf("username is required: %w", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrorValidation)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	salt := cryptox.NewSalt()
	key := cryptox.DerivePasswordKey(pw, salt)

	user := &models.User{
		UserName:  username,
		PassSalt:  salt,
		PassHash:  key,
		Wallets:   []models.WalletRecord{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Login checks the password and returns the profile. An unknown username
// still runs a full key derivation so its timing matches a wrong password.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		cryptox.DerivePasswordKey(pw, cryptox.NewSalt())
		return nil, common.ErrorUnauthorized
	}

	if !cryptox.VerifyPassword(pw, user.PassSalt, user.PassHash) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Get returns the profile for an authenticated session.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// UpdatePassword re-salts and re-derives the stored password key. The rest
// of the profile is untouched.
func (s *UserService) UpdatePassword(ctx context.Context, username, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrorValidation)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	salt := cryptox.NewSalt()
	key := cryptox.DerivePasswordKey(pw, salt)

	return s.users.Update(ctx, username, models.UserPatch{PassSalt: salt, PassHash: key})
}
