// Package auth registers and logs in users and issues and verifies the HS256
// bearer tokens that authenticate note requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"note-taking-api/apperr"
	"note-taking-api/config"
	"note-taking-api/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the token payload: the caller's identity plus the registered
// expiry claims.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type UserDirectory interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type Service struct {
	users     UserDirectory
	secret    []byte
	ttl       time.Duration
	cost      int
	dummyHash []byte
	logger    *slog.Logger
}

func NewService(users UserDirectory, cfg config.AuthConfig) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	// Compared against when the email is unknown so both login failures cost
	// the same.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("preparing password hasher: %w", err)
	}

	return &Service{
		users:     users,
		secret:    []byte(cfg.JWTSecret),
		ttl:       cfg.TokenTTL,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
		logger:    slog.Default().With("component", "auth"),
	}, nil
}

func (s *Service) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return apperr.Validation("All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperr.Validation("Password cannot be longer than 72 bytes")
		}
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: user.ID}, nil
}

func (s *Service) issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, algorithm and expiry and returns the
// identity carried by the token.
func (s *Service) VerifyToken(tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, apperr.Unauthorized("Authorization token is required")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, apperr.Unauthorized("Token expired")
		}
		return models.Identity{}, apperr.Unauthorized("Invalid token")
	}

	if !token.Valid || claims.UserID == "" {
		return models.Identity{}, apperr.Unauthorized("Invalid token")
	}

	return models.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
