package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart_climate/internal/models"
	"smart_climate/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

var (
	// ErrBlankCredentials rejects sign-ups with an empty username or password.
	ErrBlankCredentials = errors.New("username and password must not be blank")
	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoSigningKey       = errors.New("auth signing key is not configured")
	ErrUsernameTaken      = repository.ErrUsernameTaken
)

// Claims is the JWT payload handed to API clients.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// AuthService issues and verifies the bearer tokens guarding /api/v1.
type AuthService struct {
	users      repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Authorization, cfg Config) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      repo,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
		now:        time.Now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, cred models.Credentials) (int, error) {
	cred = cred.Normalize()
	if cred.Blank() {
		return 0, ErrBlankCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, cred.Username, string(hash))
}

// GenerateToken checks the credentials and signs a token for the user.
func (s *AuthService) GenerateToken(ctx context.Context, cred models.Credentials) (string, error) {
	cred = cred.Normalize()
	u, err := s.users.GetByUsername(ctx, cred.Username)
	switch {
	case err != nil:
		return "", fmt.Errorf("lookup user %q: %w", cred.Username, err)
	case u == nil:
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cred.Password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.sign(u.ID)
}

// ParseToken returns the user id carried by a valid HMAC-signed token.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	if len(s.signingKey) == 0 {
		return 0, ErrNoSigningKey
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AuthService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: signing method %v", ErrInvalidToken, t.Header["alg"])
	}
	return s.signingKey, nil
}

func (s *AuthService) sign(userID int) (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrNoSigningKey
	}
	issued := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.tokenTTL)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}
