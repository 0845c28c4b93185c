// Package database provides the SQLite storage backend for Tally.
//
// DBService implements registry.Store. Counters and their events are
// kept in two tables; event order is the insertion order of event_id,
// so decrements always remove the row with the highest id for a counter.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Mr-Dark-debug/tally/internal/registry"
)

//go:embed schema.sql
var schemaFS embed.FS

var _ registry.Store = (*DBService)(nil)

// DBService implements registry.Store using SQLite.
// It manages the connection, prepared statements, and serializes
// access through a read-write mutex.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertCounter *sql.Stmt
	stmtCounterID     *sql.Stmt
	stmtListCounters  *sql.Stmt
	stmtInsertEvent   *sql.Stmt
	stmtLastEvent     *sql.Stmt
	stmtDeleteEvent   *sql.Stmt
	stmtCountEvents   *sql.Stmt
	stmtListEvents    *sql.Stmt
}

// NewDBService opens the database at path, initializes the schema,
// and prepares every statement the store uses.
//
// Use ":memory:" for a store that lives only as long as the process.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=ON", path)
	if !strings.Contains(path, ":memory:") {
		dsn += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		svc.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	stmts := []struct {
		dst   **sql.Stmt
		name  string
		query string
	}{
		{&s.stmtInsertCounter, "InsertCounter",
			`INSERT INTO counters (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`},
		{&s.stmtCounterID, "CounterID",
			`SELECT counter_id FROM counters WHERE name = ?`},
		{&s.stmtListCounters, "ListCounters",
			`SELECT name FROM counters ORDER BY counter_id ASC`},
		{&s.stmtInsertEvent, "InsertEvent",
			`INSERT INTO events (counter_id, ts) VALUES (?, ?)`},
		{&s.stmtLastEvent, "LastEvent",
			`SELECT event_id, ts FROM events WHERE counter_id = ? ORDER BY event_id DESC LIMIT 1`},
		{&s.stmtDeleteEvent, "DeleteEvent",
			`DELETE FROM events WHERE event_id = ?`},
		{&s.stmtCountEvents, "CountEvents",
			`SELECT COUNT(*) FROM events WHERE counter_id = ?`},
		{&s.stmtListEvents, "ListEvents",
			`SELECT ts FROM events WHERE counter_id = ? ORDER BY event_id ASC`},
	}

	for _, st := range stmts {
		prepared, err := s.db.Prepare(st.query)
		if err != nil {
			return fmt.Errorf("preparing %s: %w", st.name, err)
		}
		*st.dst = prepared
	}
	return nil
}

// CreateCounter inserts a counter row. It reports false when the name
// is already taken.
func (s *DBService) CreateCounter(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.stmtInsertCounter.Exec(name, time.Now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("inserting counter %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting counter %s: %w", name, err)
	}
	return n == 1, nil
}

// AppendEvent records ts for the counter and returns the new event count.
func (s *DBService) AppendEvent(name string, ts int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning append transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id, err := counterID(tx, s.stmtCounterID, name)
	if err != nil {
		return 0, err
	}
	if _, err := tx.Stmt(s.stmtInsertEvent).Exec(id, ts); err != nil {
		return 0, fmt.Errorf("inserting event for %s: %w", name, err)
	}

	var n int
	if err := tx.Stmt(s.stmtCountEvents).QueryRow(id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events for %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing append transaction: %w", err)
	}
	return n, nil
}

// PopEvent deletes the newest event for the counter.
func (s *DBService) PopEvent(name string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("beginning pop transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := counterID(tx, s.stmtCounterID, name)
	if err != nil {
		return 0, false, err
	}

	var eventID, ts int64
	err = tx.Stmt(s.stmtLastEvent).QueryRow(id).Scan(&eventID, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading last event for %s: %w", name, err)
	}

	if _, err := tx.Stmt(s.stmtDeleteEvent).Exec(eventID); err != nil {
		return 0, false, fmt.Errorf("deleting event %d: %w", eventID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("committing pop transaction: %w", err)
	}
	return ts, true, nil
}

// Len returns the number of events held by the counter.
func (s *DBService) Len(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := counterID(nil, s.stmtCounterID, name)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.stmtCountEvents.QueryRow(id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events for %s: %w", name, err)
	}
	return n, nil
}

// Events returns the counter's timestamps, oldest first.
func (s *DBService) Events(name string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := counterID(nil, s.stmtCounterID, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtListEvents.Query(id)
	if err != nil {
		return nil, fmt.Errorf("querying events for %s: %w", name, err)
	}
	defer rows.Close()

	events := []int64{}
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, ts)
	}
	return events, rows.Err()
}

// Counters returns every counter name in creation order.
func (s *DBService) Counters() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.stmtListCounters.Query()
	if err != nil {
		return nil, fmt.Errorf("querying counters: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning counter row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes all prepared statements and the underlying connection.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts := []*sql.Stmt{
		s.stmtInsertCounter, s.stmtCounterID, s.stmtListCounters,
		s.stmtInsertEvent, s.stmtLastEvent, s.stmtDeleteEvent,
		s.stmtCountEvents, s.stmtListEvents,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}

// counterID resolves name to its row id, inside tx when tx is non-nil.
func counterID(tx *sql.Tx, stmt *sql.Stmt, name string) (int64, error) {
	if tx != nil {
		stmt = tx.Stmt(stmt)
	}

	var id int64
	err := stmt.QueryRow(name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", registry.ErrUnknownCounter, name)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up counter %s: %w", name, err)
	}
	return id, nil
}
