// Package store persists PM telemetry events to SQLite
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"gopm/core"
)

// EventStore is a batching writer of events into a SQLite database.
// Every store instance is one capture session with its own id.
type EventStore struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	session   string
	pending   []record
	batchSize int
	now       func() time.Time

	exitHandler atexit.HandlerID
}

type record struct {
	received time.Time
	evt      core.Event
}

// NewEventStore creates a store for path. An empty path picks a unique
// file name in the working directory. Buffered events are flushed at exit.
func NewEventStore(path string) *EventStore {
	session := xid.New().String()
	if path == "" {
		path = "pm_" + session + ".sqlite3"
	}

	s := &EventStore{
		path:      path,
		session:   session,
		batchSize: 1000,
		now:       time.Now,
	}

	s.exitHandler = atexit.Register(func() { _ = s.Flush() })

	return s
}

// Init opens the database and prepares the event table
func (s *EventStore) Init() error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open event store %s: %w", s.path, err)
	}
	s.DB = db

	_, err = s.Exec(`
		CREATE TABLE IF NOT EXISTS pm_event (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			session   TEXT    NOT NULL,
			received  INTEGER NOT NULL,
			seq       INTEGER NOT NULL,
			type      TEXT    NOT NULL,
			mode      TEXT    NOT NULL,
			value1    INTEGER NOT NULL,
			value2    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS pm_event_session ON pm_event (session, seq);
	`)
	if err != nil {
		return fmt.Errorf("create event table: %w", err)
	}

	s.statement, err = s.Prepare(`
		INSERT INTO pm_event (session, received, seq, type, mode, value1, value2)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	return nil
}

// Path returns the database file
func (s *EventStore) Path() string {
	return s.path
}

// Session returns the id stored with every event of this store
func (s *EventStore) Session() string {
	return s.session
}

// Write buffers an event, flushing when the batch is full
func (s *EventStore) Write(evt core.Event) error {
	s.pending = append(s.pending, record{received: s.now(), evt: evt})
	if len(s.pending) >= s.batchSize {
		return s.Flush()
	}
	return nil
}

// Flush writes all buffered events in one transaction
func (s *EventStore) Flush() error {
	if len(s.pending) == 0 || s.statement == nil {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin event batch: %w", err)
	}

	stmt := tx.Stmt(s.statement)
	for _, r := range s.pending {
		_, err := stmt.Exec(
			s.session,
			r.received.UnixNano(),
			r.evt.Seq,
			r.evt.Type.String(),
			r.evt.ModeName(),
			r.evt.Value1,
			r.evt.Value2,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert event seq %d: %w", r.evt.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event batch: %w", err)
	}
	s.pending = nil
	return nil
}

// Count returns the number of stored events of this session
func (s *EventStore) Count() (int, error) {
	var n int
	err := s.QueryRow(`SELECT COUNT(*) FROM pm_event WHERE session = ?`, s.session).Scan(&n)
	return n, err
}

// CountByType returns the number of stored events of one type in this session
func (s *EventStore) CountByType(typ core.EventType) (int, error) {
	var n int
	err := s.QueryRow(
		`SELECT COUNT(*) FROM pm_event WHERE session = ? AND type = ?`,
		s.session, typ.String(),
	).Scan(&n)
	return n, err
}

// Close flushes and closes the database. The database is closed even when
// the final flush fails.
func (s *EventStore) Close() error {
	_ = s.exitHandler.Cancel()
	if s.DB == nil {
		return nil
	}
	flushErr := s.Flush()
	return errors.Join(flushErr, s.DB.Close())
}
