package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// timestampLayout is the stored history timestamp format. Minute precision;
// same-minute records are ordered by the autoincrement id instead.
const timestampLayout = "2006-01-02 15:04"

type Database struct {
	db  *sql.DB
	now func() time.Time
}

type HistoryRecord struct {
	ID          int64
	Username    string
	SongTitle   string
	Artist      string
	Explanation string
	Timestamp   string
}

// New opens the SQLite database and runs migrations. dbPath defaults to the
// DB_PATH env var or /app/data/explainer.db.
func New(dbPath string) (*Database, error) {
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "/app/data/explainer.db"
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db, now: time.Now}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL REFERENCES users(username),
			song_title TEXT NOT NULL DEFAULT '',
			artist TEXT NOT NULL DEFAULT '',
			explanation TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_username ON history(username)`,
		`CREATE INDEX IF NOT EXISTS idx_history_recency ON history(username, timestamp DESC, id DESC)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// CreateUser inserts a new user row. Returns ErrUsernameTaken if the username
// already exists; the stored hash is left untouched in that case.
func (d *Database) CreateUser(username, passwordHash string) error {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if affected == 0 {
		return ErrUsernameTaken
	}
	return nil
}

// GetPasswordHash returns the stored hash for a username, or ErrUserNotFound.
func (d *Database) GetPasswordHash(username string) (string, error) {
	var hash string
	err := d.db.QueryRow(
		`SELECT password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query user: %w", err)
	}
	return hash, nil
}

// UpdatePasswordHash replaces the stored hash for a username. Used to upgrade
// legacy digests in place after a successful verification.
func (d *Database) UpdatePasswordHash(username, passwordHash string) error {
	_, err := d.db.Exec(
		`UPDATE users SET password_hash = ? WHERE username = ?`,
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	return nil
}

// RecordExplanation appends one history record for a user. The referenced
// user is not re-checked here; the schema declaration is the only guard.
func (d *Database) RecordExplanation(username, songTitle, artist, explanation string) error {
	_, err := d.db.Exec(
		`INSERT INTO history (username, song_title, artist, explanation, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		username, songTitle, artist, explanation, d.now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record explanation: %w", err)
	}
	return nil
}

// GetHistory returns a user's history records newest first. The id tiebreak
// keeps records from the same minute in reverse insertion order.
func (d *Database) GetHistory(username string) ([]HistoryRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, username, song_title, artist, explanation, timestamp
		 FROM history
		 WHERE username = ?
		 ORDER BY timestamp DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.ID, &r.Username, &r.SongTitle, &r.Artist, &r.Explanation, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
