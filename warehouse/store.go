// warehouse/store.go
package warehouse

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DateLayout is the storage format for trade_date. Plain ISO dates keep
// range filters and GROUP BY correct under SQLite's text comparison.
const DateLayout = "2006-01-02"

// Store owns the star-schema database. It is constructed once at process
// start and handed to the ETL pipeline and the query gateway; there is
// no package-level handle.
//
// Writes are serialized by mu (single-writer model). Reads go straight
// to the pool and may run concurrently.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
