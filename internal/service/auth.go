package service

import (
	"context"
	"errors"
	"time"

	"github.com/minhtd/product-catalog/internal/hash"
	"github.com/minhtd/product-catalog/internal/logging"
	"github.com/minhtd/product-catalog/internal/models"
	"github.com/minhtd/product-catalog/internal/repo"
	"github.com/minhtd/product-catalog/internal/tokens"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers both the unknown-username and wrong-password
// paths. Keeping the two indistinguishable prevents username enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrUsernameTaken = errors.New("username already exists")

type AuthService struct {
	Repo       *repo.GormRepo
	JWTSecret  []byte
	BcryptCost int
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password, s.BcryptCost)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_error", "status", 409, "reason", "username taken", "username", username)
			return nil, ErrUsernameTaken
		}
		l.Error("register_error", "reason", "db error", "error", err)
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "db error", "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	accessToken, err := tokens.SignAccessToken(user.ID, user.Username, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return "", err
	}

	l.Info("login_success", "user_id", user.ID)
	return accessToken, nil
}
