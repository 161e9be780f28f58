// Package localstore is a small key/value store backed by SQLite. The
// client keeps its cart, favorites, session and cached catalog here so
// state survives restarts.
package localstore

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Well-known keys.
const (
	KeyCart        = "cart"
	KeyFavorites   = "favorites"
	KeyBooks       = "books"
	KeyCurrentUser = "currentUser"
)

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
	key TEXT NOT NULL PRIMARY KEY,
	value BLOB NOT NULL
);
`

type Store struct {
	db     *sql.DB
	dbLock sync.Mutex
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local store")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to init local store schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetItem returns the raw value for key, or nil when the key is absent.
func (s *Store) GetItem(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (s *Store) SetItem(key string, value []byte) error {
	stmt := `
		INSERT INTO local_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.Exec(stmt, key, value); err != nil {
		return errors.Wrapf(err, "failed to set %q", key)
	}
	return nil
}

func (s *Store) RemoveItem(key string) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.Exec(`DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "failed to remove %q", key)
	}
	return nil
}

// GetJSON unmarshals the value for key into v. A missing key leaves v
// untouched and returns false.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	raw, err := s.GetItem(key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, errors.Wrapf(err, "failed to decode %q", key)
	}
	return true, nil
}

func (s *Store) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %q", key)
	}
	return s.SetItem(key, raw)
}
