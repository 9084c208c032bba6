package auth

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcjie05/song-explainer-ai/database"
)

func newTestCredentials(t *testing.T) (*Credentials, *database.Database) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	// Min cost keeps the bcrypt rounds cheap for tests
	return NewCredentials(db, 4), db
}

func TestRegisterThenVerify(t *testing.T) {
	creds, _ := newTestCredentials(t)

	if err := creds.Register("alice", "pw123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !creds.Verify("alice", "pw123") {
		t.Error("Verify() = false for correct password")
	}
	if creds.Verify("alice", "other") {
		t.Error("Verify() = true for wrong password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	creds, _ := newTestCredentials(t)

	if err := creds.Register("alice", "pw123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := creds.Register("alice", "other")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register() error = %v; want ErrUsernameTaken", err)
	}

	// Original password still works; the attempted one does not
	if !creds.Verify("alice", "pw123") {
		t.Error("Verify() = false for original password after duplicate register")
	}
	if creds.Verify("alice", "other") {
		t.Error("Verify() = true for password from failed registration")
	}
}

func TestRegisterPasswordTooLong(t *testing.T) {
	creds, _ := newTestCredentials(t)

	// bcrypt caps input at 72 bytes
	if err := creds.Register("alice", strings.Repeat("p", 72)); err != nil {
		t.Errorf("Register() error = %v for 72-byte password; want nil", err)
	}
	err := creds.Register("bob", strings.Repeat("p", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Register() error = %v; want ErrPasswordTooLong", err)
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	creds, _ := newTestCredentials(t)

	if creds.Verify("nobody", "anything") {
		t.Error("Verify() = true for unknown user")
	}
}

func TestVerifyLegacyDigestAndUpgrade(t *testing.T) {
	creds, db := newTestCredentials(t)

	// Simulate a row written by the old unsalted SHA-256 scheme
	if err := db.CreateUser("legacyuser", LegacyDigest("pw123")); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if creds.Verify("legacyuser", "wrong") {
		t.Error("Verify() = true for wrong password against legacy digest")
	}
	if !creds.Verify("legacyuser", "pw123") {
		t.Fatal("Verify() = false for correct password against legacy digest")
	}

	// The hash should now be upgraded to bcrypt
	hash, err := db.GetPasswordHash("legacyuser")
	if err != nil {
		t.Fatalf("GetPasswordHash() error = %v", err)
	}
	if !isBcryptHash(hash) {
		t.Errorf("stored hash %q not upgraded to bcrypt", hash)
	}

	// And still verify after the upgrade
	if !creds.Verify("legacyuser", "pw123") {
		t.Error("Verify() = false after legacy hash upgrade")
	}
}

func TestIsBcryptHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"bcrypt_2a", "$2a$12$abcdefghijklmnopqrstuv", true},
		{"bcrypt_2b", "$2b$12$abcdefghijklmnopqrstuv", true},
		{"bcrypt_2y", "$2y$12$abcdefghijklmnopqrstuv", true},
		{"sha256_hex", LegacyDigest("pw"), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBcryptHash(tt.hash); got != tt.want {
				t.Errorf("isBcryptHash(%q) = %v; want %v", tt.hash, got, tt.want)
			}
		})
	}
}
