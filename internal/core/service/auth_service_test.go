package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskman/taskman-api/internal/core/auth"
	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/core/ports"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2030, time.June, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newAuthService(ttl time.Duration) (*AuthService, *stubUserRepo, *testClock) {
	repo := newStubUserRepo()
	clock := newTestClock()
	tokens := auth.NewTokens([]byte("secret"), ttl, clock.Now)
	return NewAuthService(repo, tokens, discardLogger), repo, clock
}

func signup(t *testing.T, svc *AuthService, email, password string, grade *int) int64 {
	t.Helper()
	id, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:    email,
		Password: password,
		Name:     "Anna",
		Grade:    grade,
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	return id
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo, _ := newAuthService(time.Hour)

	id := signup(t, svc, "anna@example.com", "qwerty", intPtr(3))
	if id == 0 {
		t.Fatalf("expected store-assigned id")
	}

	stored, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "qwerty" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("qwerty")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.Grade == nil || *stored.Grade != 3 {
		t.Fatalf("unexpected grade: %v", stored.Grade)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, repo, _ := newAuthService(time.Hour)

	signup(t, svc, "bob@example.com", "pass", nil)
	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "bob@example.com", Password: "pass2", Name: "Bob"})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	users, _ := repo.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(users))
	}
}

func TestAuthService_Signup_InvalidGrade(t *testing.T) {
	svc, repo, _ := newAuthService(time.Hour)

	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "c@example.com", Password: "p", Name: "C", Grade: intPtr(11)})
	if !errors.Is(err, domain.ErrInvalidGrade) {
		t.Fatalf("expected ErrInvalidGrade, got %v", err)
	}
	if users, _ := repo.List(context.Background()); len(users) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestAuthService_Signup_StoreError(t *testing.T) {
	svc, repo, _ := newAuthService(time.Hour)
	repo.err = errors.New("connection reset")

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Email: "d@example.com", Password: "p", Name: "D"}); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestAuthService_Login_ResolvesToSameUser(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	id := signup(t, svc, "carol@example.com", "s3cret", nil)

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token.AccessToken == "" || token.TokenType != "bearer" {
		t.Fatalf("unexpected token: %+v", token)
	}

	user, err := svc.Resolve(context.Background(), token.AccessToken)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if user.ID != id || user.Email != "carol@example.com" {
		t.Fatalf("resolved wrong user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)
	signup(t, svc, "dave@example.com", "goodpass", nil)

	token, err := svc.Login(context.Background(), "dave@example.com", "badpass")
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if token != nil {
		t.Fatalf("no token must be issued on wrong password")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Resolve_Expired(t *testing.T) {
	svc, _, clock := newAuthService(15 * time.Minute)
	signup(t, svc, "erin@example.com", "pw", nil)

	token, err := svc.Login(context.Background(), "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !token.ExpiresAt.Equal(clock.Now().Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", token.ExpiresAt)
	}

	clock.Advance(14 * time.Minute)
	if _, err := svc.Resolve(context.Background(), token.AccessToken); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	clock.Advance(2 * time.Minute)
	if _, err := svc.Resolve(context.Background(), token.AccessToken); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAuthService_Resolve_InvalidToken(t *testing.T) {
	svc, _, _ := newAuthService(time.Hour)

	if _, err := svc.Resolve(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Resolve_UserGone(t *testing.T) {
	svc, _, clock := newAuthService(time.Hour)
	tokens := auth.NewTokens([]byte("secret"), time.Hour, clock.Now)

	token, _, err := tokens.IssueDefault("nobody@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
