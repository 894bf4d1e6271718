package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	defaultAccessTTL      = 15 * time.Minute
	defaultRefreshTTL     = 7 * 24 * time.Hour
	defaultMinPasswordLen = 8
)

// dummyHash is compared against when the username is unknown so login takes
// roughly the same time for missing users and wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login, and refresh on top of a user
// repository and a refresh-token store.
type AuthService struct {
	users          ports.UserRepository
	refreshTokens  ports.RefreshTokenStore
	jwtSecret      string
	accessTTL      time.Duration
	refreshTTL     time.Duration
	minPasswordLen int
	logger         zerolog.Logger
}

func NewAuthService(users ports.UserRepository, refreshTokens ports.RefreshTokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		users:          users,
		refreshTokens:  refreshTokens,
		jwtSecret:      jwtSecret,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
		minPasswordLen: defaultMinPasswordLen,
		logger:         logger,
	}
}

// Register creates a regular (non-staff) identity. The password is stored
// only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < s.minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credential and, on success, issues an access/refresh
// pair. Every failure cause maps to the same error so the response never
// reveals whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, jti, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("login succeeded")
	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is not rotated. An access token presented here is
// rejected even though its signature verifies.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, s.keyFunc)
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims["token_type"] != tokenTypeRefresh {
		return "", domain.ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", domain.ErrInvalidToken
	}
	live, err := s.refreshTokens.Exists(ctx, jti)
	if err != nil {
		return "", err
	}
	if !live {
		return "", domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	// Re-read the user so a deleted account or a changed role cannot keep
	// minting tokens from a stale claim set.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return []byte(s.jwtSecret), nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"username":   user.Username,
		"is_staff":   user.IsStaff,
		"token_type": tokenTypeAccess,
		"exp":        time.Now().Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) generateRefreshToken(user *domain.User) (token, jti string, err error) {
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"jti":        jti,
		"token_type": tokenTypeRefresh,
		"exp":        time.Now().Add(s.refreshTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString([]byte(s.jwtSecret))
	return token, jti, err
}
