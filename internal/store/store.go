// Package store keeps named periods in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/lambdcalculus/periods/pkg/period"
)

// The version of the schema, used for migrations.
const version int = 1

// ErrNotFound is returned when no period has the requested name.
var ErrNotFound = errors.New("store: No period with that name.")

// ErrVersion is returned by Open for a database of another schema version.
var ErrVersion = errors.New("store: Unsupported schema version.")

// Represents a connection to the database. Used for database operations.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Entry is a saved period.
type Entry struct {
	Name    string
	Period  period.Period
	Created time.Time
}

// Opens a connection to the database, creating it and initializing the tables if necessary.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: Couldn't connect to database (%w).", err)
	}

	// The type is kept apart from the ISO text, which does not record
	// which fields are supported.
	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS periods(
        name    TEXT PRIMARY KEY,
        iso     TEXT NOT NULL,
        fields  TEXT NOT NULL,
        created INTEGER NOT NULL
    )`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: Couldn't create periods table (%w).", err)
	}
	if err := checkVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// checkVersion stamps a new database with the schema version, and refuses one
// written by another version.
func checkVersion(db *sql.DB) error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("store: Couldn't read schema version (%w).", err)
	}
	switch current {
	case version:
		return nil
	case 0:
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
			return fmt.Errorf("store: Couldn't set schema version (%w).", err)
		}
		return nil
	}
	return fmt.Errorf("%w (database has %d, want %d)", ErrVersion, current, version)
}

// Save stores p under name, replacing any period already there.
func (s *Store) Save(name string, p period.Period) error {
	if name == "" {
		return fmt.Errorf("store: Name cannot be empty.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
    INSERT INTO periods
        (name, iso, fields, created)
    VALUES
        (?, ?, ?, ?)
    ON CONFLICT(name) DO UPDATE SET
        iso = excluded.iso,
        fields = excluded.fields`,
		name, period.NullPeriod{Period: p, Valid: true}, p.Type().FieldNames(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store: Couldn't save period %q (%w).", name, err)
	}
	return nil
}

// Load returns the period saved under name, in the type it was saved with.
func (s *Store) Load(name string) (Entry, error) {
	row := s.db.QueryRow("SELECT name, iso, fields, created FROM periods WHERE name = ?", name)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w (%q)", ErrNotFound, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("store: Couldn't load period %q (%w).", name, err)
	}
	return e, nil
}

// List returns every saved period, ordered by name.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT name, iso, fields, created FROM periods ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("store: Couldn't query database (%w).", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return entries, fmt.Errorf("store: Error scanning row (%w).", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return entries, fmt.Errorf("store: Error reading rows (%w).", err)
	}
	return entries, nil
}

// Delete removes the period saved under name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM periods WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("store: Couldn't delete period %q (%w).", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w (%q)", ErrNotFound, name)
	}
	return nil
}

// Closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: Error closing database (%w).", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e       Entry
		iso     string
		fields  string
		created int64
	)
	if err := row.Scan(&e.Name, &iso, &fields, &created); err != nil {
		return Entry{}, err
	}
	kinds, err := period.ParseFieldKinds(fields)
	if err != nil {
		return Entry{}, err
	}
	pt, err := period.ForFields(kinds...)
	if err != nil {
		return Entry{}, err
	}
	if e.Period, err = period.ParseISO(iso, pt); err != nil {
		return Entry{}, err
	}
	e.Created = time.Unix(created, 0)
	return e, nil
}
