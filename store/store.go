package store // import "github.com/bookbazaar/bookbazaar/store"

import (
	"database/sql"
	"sync"
)

type Store struct {
	db                 *sql.DB
	dbLock             sync.Mutex // dbLock serializes writes, sqlite allows one writer
	UserCache          sync.Map   // map[string]*model.User, keyed by email
	BookCache          sync.Map   // map[string]*model.Book, keyed by uid
	SystemSettingCache sync.Map   // map[string]*model.SystemSetting
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

// MigrationHistory records which schema versions have been applied.
type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

type UpsertMigrationHistory struct {
	Version string
}

type FindMigrationHistory struct {
}
