package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting tools can read while the vault writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS deposits (
			event_id      TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			from_identity TEXT,
			amount        INTEGER,
			balance_after INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_ts ON deposits(timestamp)`,

		`CREATE TABLE IF NOT EXISTS admin_changes (
			event_id  TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			caller    TEXT,
			identity  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_admin_ts ON admin_changes(timestamp)`,

		`CREATE TABLE IF NOT EXISTS transfer_requests (
			event_id   TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			request_id INTEGER,
			caller     TEXT,
			amount     INTEGER,
			recipient  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_ts ON transfer_requests(timestamp)`,

		`CREATE TABLE IF NOT EXISTS approvals (
			event_id   TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			request_id INTEGER,
			approver   TEXT,
			approvals  INTEGER,
			required   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_approvals_ts ON approvals(timestamp)`,

		`CREATE TABLE IF NOT EXISTS executions (
			event_id      TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			request_id    INTEGER,
			amount        INTEGER,
			recipient     TEXT,
			approvals     INTEGER,
			balance_after INTEGER,
			trigger_kind  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_executions_ts ON executions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordDeposit(evt *DepositEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO deposits
		(event_id, timestamp, from_identity, amount, balance_after)
		VALUES (?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(),
		evt.From, evt.Amount, evt.BalanceAfter,
	)
	return err
}

func (r *SQLiteRecorder) RecordAdminChange(evt *AdminEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO admin_changes
		(event_id, timestamp, caller, identity)
		VALUES (?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), evt.Caller, evt.Identity,
	)
	return err
}

func (r *SQLiteRecorder) RecordRequest(evt *RequestEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO transfer_requests
		(event_id, timestamp, request_id, caller, amount, recipient)
		VALUES (?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(),
		evt.RequestID, evt.Caller, evt.Amount, evt.Recipient,
	)
	return err
}

func (r *SQLiteRecorder) RecordApproval(evt *ApprovalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO approvals
		(event_id, timestamp, request_id, approver, approvals, required)
		VALUES (?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(),
		evt.RequestID, evt.Approver, evt.Approvals, evt.Required,
	)
	return err
}

func (r *SQLiteRecorder) RecordExecution(evt *ExecutionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO executions
		(event_id, timestamp, request_id, amount, recipient, approvals, balance_after, trigger_kind)
		VALUES (?,?,?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(),
		evt.RequestID, evt.Amount, evt.Recipient,
		evt.Approvals, evt.BalanceAfter, evt.Trigger,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
