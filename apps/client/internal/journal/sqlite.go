package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultSQLitePath = "data/sushigo_journal.db"

type SQLiteService struct {
	db *sql.DB
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	return NewSQLiteService(sqlitePathFromEnv())
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteJournalSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteService{db: db}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) Record(ctx context.Context, entry Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	handJSON, err := encodeHand(entry.Hand)
	if err != nil {
		return err
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO decision_journal (
    session_id, seq, game_id, player_id, round, turn, hand_json, action, rule, recorded_at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (session_id, seq) DO NOTHING
`, entry.SessionID, entry.Seq, entry.GameID, entry.PlayerID, entry.Round, entry.Turn,
		handJSON, entry.Action, entry.Rule, at.UTC().UnixMilli())
	return err
}

func (s *SQLiteService) List(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, seq, game_id, player_id, round, turn, hand_json, action, rule, recorded_at_ms
FROM decision_journal
WHERE session_id = ?
ORDER BY seq DESC
LIMIT ?
`, sessionID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var (
			e        Entry
			handJSON string
			atMs     int64
		)
		if err := rows.Scan(&e.SessionID, &e.Seq, &e.GameID, &e.PlayerID, &e.Round, &e.Turn,
			&handJSON, &e.Action, &e.Rule, &atMs); err != nil {
			return nil, err
		}
		if e.Hand, err = decodeHand(handJSON); err != nil {
			return nil, fmt.Errorf("decode hand of %s/%d: %w", e.SessionID, e.Seq, err)
		}
		e.At = time.UnixMilli(atMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(out)
	return out, nil
}

func ensureSQLiteJournalSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS decision_journal (
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    game_id TEXT NOT NULL,
    player_id INTEGER NOT NULL,
    round INTEGER NOT NULL,
    turn INTEGER NOT NULL,
    hand_json TEXT NOT NULL DEFAULT '[]',
    action TEXT NOT NULL,
    rule TEXT NOT NULL DEFAULT '',
    recorded_at_ms INTEGER NOT NULL,
    PRIMARY KEY (session_id, seq)
)`,
		`CREATE INDEX IF NOT EXISTS idx_decision_journal_game ON decision_journal(game_id, recorded_at_ms DESC)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func sqlitePathFromEnv() string {
	candidates := []string{
		strings.TrimSpace(os.Getenv("JOURNAL_SQLITE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate)
		}
	}
	return defaultSQLitePath
}
