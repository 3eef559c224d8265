package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	domain "github.com/ANUSHKA-GUPTA30/rebook-platform/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dbPath := "test_users_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})

	tokens := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Duration:  time.Hour,
		Issuer:    "rebook-test",
	})
	return NewService(NewUserRepository(db), NewPasswordHasher(), tokens)
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)

	user, err := s.Register(ctx, "alice", "reading-is-fun")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Register() username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "reading-is-fun" {
		t.Error("Register() stored the plaintext password")
	}

	token, loggedIn, err := s.Login(ctx, "alice", "reading-is-fun")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Error("Login() returned empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() user ID = %q, want %q", loggedIn.ID, user.ID)
	}

	// The token must resolve back to the same identity.
	session, err := s.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if session.Username != "alice" {
		t.Errorf("session username = %q, want %q", session.Username, "alice")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)

	if _, err := s.Register(ctx, "alice", "first"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := s.Register(ctx, "alice", "second")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("second Register() error = %v, want ErrDuplicateUsername", err)
	}

	// Surrounding whitespace is trimmed before the uniqueness check.
	if _, err := s.Register(ctx, "  alice  ", "third"); !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("trimmed Register() error = %v, want ErrDuplicateUsername", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)

	if _, err := s.Register(ctx, "bob", "secret-pw"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "bob", "not-the-password"},
		{"unknown user", "nobody", "secret-pw"},
		{"empty password", "bob", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Login(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)

	if _, err := s.Register(ctx, "", "pw"); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("empty username error = %v, want ErrInvalidUsername", err)
	}
	if _, err := s.Register(ctx, "carol", ""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("empty password error = %v, want ErrInvalidPassword", err)
	}
}
