package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/uroom/uroom-server/internal/types"
)

// SqliteSessionRepository mirrors the two session keys to a local
// SQLite file. It is a one-way mirror: last write wins, no locking
// across processes.
type SqliteSessionRepository struct {
	conn *sql.DB
}

func NewSqliteSessionRepository(path string) (*SqliteSessionRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session store: %w", err)
	}

	_, err = db.Exec("CREATE TABLE IF NOT EXISTS session_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}

	return &SqliteSessionRepository{conn: db}, nil
}

func (r *SqliteSessionRepository) Ping() error {
	return r.conn.Ping()
}

// LoadSession reads both keys. A missing key leaves the corresponding
// field at its zero value; a malformed stored value is treated the same
// as a missing one so a corrupt file never prevents startup.
func (r *SqliteSessionRepository) LoadSession() (Session, error) {
	var sess Session

	raw, err := r.getValue(UserKey)
	if err != nil {
		return sess, err
	}
	if raw != "" {
		var user types.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			sess.User = &user
		}
	}

	raw, err = r.getValue(OnboardedKey)
	if err != nil {
		return sess, err
	}
	if raw != "" {
		var onboarded bool
		if err := json.Unmarshal([]byte(raw), &onboarded); err == nil {
			sess.Onboarded = onboarded
		}
	}

	return sess, nil
}

func (r *SqliteSessionRepository) SaveUser(user types.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return r.setValue(UserKey, string(data))
}

func (r *SqliteSessionRepository) DeleteUser() error {
	_, err := r.conn.Exec("DELETE FROM session_kv WHERE key = ?", UserKey)
	return err
}

func (r *SqliteSessionRepository) SaveOnboarded(onboarded bool) error {
	data, err := json.Marshal(onboarded)
	if err != nil {
		return fmt.Errorf("marshal onboarded: %w", err)
	}

	return r.setValue(OnboardedKey, string(data))
}

func (r *SqliteSessionRepository) getValue(key string) (string, error) {
	row := r.conn.QueryRow("SELECT value FROM session_kv WHERE key = ? LIMIT 1", key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return value, nil
}

func (r *SqliteSessionRepository) setValue(key, value string) error {
	_, err := r.conn.Exec(
		"INSERT INTO session_kv (key, value) VALUES (?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key,
		value,
	)

	return err
}

func (r *SqliteSessionRepository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
