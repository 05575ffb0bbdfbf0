// Package auth provides credential verification and bearer token
// issuance for the analysis API. Passwords are stored as bcrypt hashes
// and access tokens are HMAC-signed JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/neurolab-analysis-server/internal/domain"
	"github.com/neurolab-analysis-server/internal/store"
)

// Claims carries the JWT payload for an issued access token.
type Claims struct {
	Username string `json:"sub"`
	jwt.RegisteredClaims
}

// Token is the response body of a successful token request.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service authenticates users and issues access tokens.
type Service struct {
	users    store.Store
	secret   []byte
	tokenTTL time.Duration
	logger   *logrus.Logger
}

// NewService creates an auth service backed by the given user store.
func NewService(users store.Store, secret string, tokenTTL time.Duration, logger *logrus.Logger) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}

	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}, nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a new user account with a hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*store.User, error) {
	if username == "" || password == "" {
		return nil, &domain.InvalidInputError{
			Field:   "username",
			Message: "username and password are required",
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &store.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"username": username,
	}).Info("Registered user")
	return user, nil
}

// Authenticate verifies a username/password pair and returns the user.
// It returns an authentication APIError on any credential failure so
// the caller cannot distinguish unknown users from wrong passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewAPIError(domain.ErrAuthentication, "incorrect username or password", "", "")
		}
		return nil, domain.NewAPIError(domain.ErrDatabaseError, "failed to look up user", err.Error(), "")
	}

	if user.Disabled {
		return nil, domain.NewAPIError(domain.ErrAuthentication, "account is disabled", "", "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.NewAPIError(domain.ErrAuthentication, "incorrect username or password", "", "")
	}

	return user, nil
}

// IssueToken signs a new access token for the user.
func (s *Service) IssueToken(user *store.User) (*Token, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

// VerifyToken parses and validates an access token, returning the
// username it was issued to.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", domain.NewAPIError(domain.ErrAuthentication, "could not validate credentials", "", "")
	}

	if !token.Valid || claims.Username == "" {
		return "", domain.NewAPIError(domain.ErrAuthentication, "could not validate credentials", "", "")
	}

	return claims.Username, nil
}

// ResolveUser returns the active user a verified token belongs to.
func (s *Service) ResolveUser(ctx context.Context, username string) (*store.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewAPIError(domain.ErrAuthentication, "could not validate credentials", "", "")
		}
		return nil, domain.NewAPIError(domain.ErrDatabaseError, "failed to look up user", err.Error(), "")
	}
	if user.Disabled {
		return nil, domain.NewAPIError(domain.ErrAuthentication, "account is disabled", "", "")
	}
	return user, nil
}
