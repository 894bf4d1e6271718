package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.users[clone.Username] = cloneUser(clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubTokenStore struct {
	saved map[string]int64
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{saved: make(map[string]int64)}
}

func (s *stubTokenStore) Save(_ context.Context, jti string, userID int64, _ time.Duration) error {
	s.saved[jti] = userID
	return nil
}

func (s *stubTokenStore) Exists(_ context.Context, jti string) (bool, error) {
	_, ok := s.saved[jti]
	return ok, nil
}

func (s *stubTokenStore) Delete(_ context.Context, jti string) error {
	delete(s.saved, jti)
	return nil
}

func newAuthService(repo *stubUserRepo, store *stubTokenStore) *AuthService {
	return NewAuthService(repo, store, "secret", time.Hour, 24*time.Hour, zerolog.Nop())
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "strongpass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if user.IsStaff {
		t.Fatalf("registration must never grant the staff role")
	}
	if user.PasswordHash == "strongpass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("strongpass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Register(context.Background(), "", "", "strongpass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", "short"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "strongpass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other@example.com", "strongpass456"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubTokenStore()
	svc := newAuthService(repo, store)

	created, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// Promote to staff the way an operator would, directly in the store.
	repo.users["carol"].IsStaff = true

	pair, err := svc.Login(context.Background(), "carol", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	access := parseClaims(t, pair.Access)
	if access["token_type"] != "access" {
		t.Fatalf("expected access token, got %v", access["token_type"])
	}
	if access["is_staff"] != true {
		t.Fatalf("expected staff claim, got %v", access["is_staff"])
	}
	if access["username"] != "carol" {
		t.Fatalf("unexpected username claim: %v", access["username"])
	}

	refresh := parseClaims(t, pair.Refresh)
	if refresh["token_type"] != "refresh" {
		t.Fatalf("expected refresh token, got %v", refresh["token_type"])
	}
	jti, _ := refresh["jti"].(string)
	if jti == "" {
		t.Fatalf("refresh token missing jti")
	}
	if store.saved[jti] != created.ID {
		t.Fatalf("refresh jti not stored for user %d", created.ID)
	}
}

// Unknown username and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Register(context.Background(), "dave", "", "goodpass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, unknownUser := svc.Login(context.Background(), "ghost", "whatever")
	_, missingField := svc.Login(context.Background(), "dave", "")

	for _, err := range []error{wrongPass, unknownUser, missingField} {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Register(context.Background(), "erin", "", "strongpass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "erin", "strongpass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims := parseClaims(t, access)
	if claims["token_type"] != "access" {
		t.Fatalf("expected access token, got %v", claims["token_type"])
	}
	if claims["username"] != "erin" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
}

// An access token must not work as a refresh credential even though its
// signature verifies.
func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Register(context.Background(), "frank", "", "strongpass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "frank", "strongpass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.Access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Refresh_RevokedToken(t *testing.T) {
	store := newStubTokenStore()
	svc := newAuthService(newStubUserRepo(), store)

	if _, err := svc.Register(context.Background(), "grace", "", "strongpass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "grace", "strongpass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Revoke everything the store holds.
	for jti := range store.saved {
		_ = store.Delete(context.Background(), jti)
	}

	if _, err := svc.Refresh(context.Background(), pair.Refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for revoked jti, got %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
