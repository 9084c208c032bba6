package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcjie05/song-explainer-ai/database"
)

var ErrUsernameTaken = database.ErrUsernameTaken

// ErrPasswordTooLong is returned for passwords over 72 bytes, the hard input
// limit of the bcrypt algorithm.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

const maxPasswordBytes = 72

// Credentials stores and verifies username/password pairs. New passwords are
// hashed with bcrypt; legacy unsalted SHA-256 hex digests are still accepted
// on verify and upgraded in place on first successful login.
type Credentials struct {
	db   *database.Database
	cost int
}

func NewCredentials(db *database.Database, cost int) *Credentials {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{db: db, cost: cost}
}

// Register hashes the password and creates the user. The only enforced
// constraint is username uniqueness.
func (c *Credentials) Register(username, password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return err
	}
	return c.db.CreateUser(username, string(hash))
}

// Verify reports whether the password matches the stored hash for username.
// An unknown username and a wrong password are indistinguishable: both false.
func (c *Credentials) Verify(username, password string) bool {
	stored, err := c.db.GetPasswordHash(username)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			log.Errorf("failed to load password hash for %s: %v", username, err)
		}
		return false
	}

	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	// Legacy row: single-pass SHA-256 hex digest, exact equality.
	if !legacyDigestEqual(stored, password) {
		return false
	}

	// Upgrade the legacy digest now that we hold the plaintext.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err == nil {
		if err := c.db.UpdatePasswordHash(username, string(hash)); err != nil {
			log.Warnf("failed to upgrade legacy hash for %s: %v", username, err)
		}
	}
	return true
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}

func legacyDigestEqual(stored, password string) bool {
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1
}

// LegacyDigest computes the historical password digest. Only used by tests
// and migration tooling; new hashes never go through here.
func LegacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
