// Package storage persists the audit log and chat log using SQLite.
package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Driver sqlite
)

// AuditEntry records one moderation or administrative action.
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	ID        string    `json:"id"`
	Caller    string    `json:"caller"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// ChatEntry records one broadcast or whisper sent through the dashboard.
type ChatEntry struct {
	Timestamp time.Time `json:"ts"`
	ID        string    `json:"id"`
	Caller    string    `json:"caller"`
	Kind      string    `json:"kind"`
	Player    string    `json:"player,omitempty"`
	Message   string    `json:"message"`
}

// Repository manages the SQLite database connection.
type Repository struct {
	db *sql.DB
}

// New initializes a new SQLite connection, sets connection pool parameters,
// and runs migrations.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// LogAction appends one audit entry.
func (r *Repository) LogAction(caller, action, target, detail string) error {
	_, err := r.db.Exec(
		`INSERT INTO audit_log (id, caller, action, target, detail, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), caller, action, target, detail, time.Now(),
	)

	return err
}

// AuditLog returns the most recent audit entries, newest first.
func (r *Repository) AuditLog(limit int) ([]AuditEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, caller, action, target, detail, ts FROM audit_log ORDER BY ts DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var target, detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Caller, &e.Action, &target, &detail, &e.Timestamp); err != nil {
			continue
		}
		e.Target = target.String
		e.Detail = detail.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// LogChat appends one chat entry. kind is "broadcast" or "msg"; player is
// empty for broadcasts.
func (r *Repository) LogChat(caller, kind, player, message string) error {
	_, err := r.db.Exec(
		`INSERT INTO chat_log (id, caller, kind, player, message, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), caller, kind, player, message, time.Now(),
	)

	return err
}

// ChatLog returns the most recent chat entries, newest first.
func (r *Repository) ChatLog(limit int) ([]ChatEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, caller, kind, player, message, ts FROM chat_log ORDER BY ts DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []ChatEntry
	for rows.Next() {
		var e ChatEntry
		var player sql.NullString
		if err := rows.Scan(&e.ID, &e.Caller, &e.Kind, &player, &e.Message, &e.Timestamp); err != nil {
			continue
		}
		e.Player = player.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
