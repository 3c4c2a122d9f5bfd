package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func sampleEntries(sessionID string, n int) []Entry {
	out := make([]Entry, 0, n)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 1; i <= n; i++ {
		out = append(out, Entry{
			SessionID: sessionID,
			Seq:       i,
			GameID:    "g1",
			PlayerID:  2,
			Round:     1,
			Turn:      i,
			Hand:      []string{"Tempura", "Squid Nigiri"},
			Action:    "PLAY 1",
			Rule:      "fallback_priority",
			At:        base.Add(time.Duration(i) * time.Second),
		})
	}
	return out
}

func exerciseService(t *testing.T, svc Service) {
	t.Helper()
	ctx := context.Background()

	for _, e := range sampleEntries("s1", 5) {
		if err := svc.Record(ctx, e); err != nil {
			t.Fatalf("record %d: %v", e.Seq, err)
		}
	}
	if err := svc.Record(ctx, sampleEntries("s2", 1)[0]); err != nil {
		t.Fatalf("record other session: %v", err)
	}
	// Duplicate (session, seq) is ignored.
	dup := sampleEntries("s1", 1)[0]
	dup.Action = "PLAY 0"
	if err := svc.Record(ctx, dup); err != nil {
		t.Fatalf("record duplicate: %v", err)
	}

	all, err := svc.List(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(all))
	}
	if all[0].Seq != 1 || all[4].Seq != 5 {
		t.Fatalf("expected oldest first, got seq %d..%d", all[0].Seq, all[4].Seq)
	}
	if all[0].Action != "PLAY 1" {
		t.Fatalf("duplicate overwrote entry: %q", all[0].Action)
	}
	if len(all[2].Hand) != 2 || all[2].Hand[1] != "Squid Nigiri" {
		t.Fatalf("hand mismatch: %v", all[2].Hand)
	}
	if !all[2].At.Equal(time.Date(2026, 1, 2, 3, 4, 8, 0, time.UTC)) {
		t.Fatalf("timestamp mismatch: %v", all[2].At)
	}

	tail, err := svc.List(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("list tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Seq != 4 || tail[1].Seq != 5 {
		t.Fatalf("expected newest two in order, got %+v", tail)
	}

	none, err := svc.List(ctx, "missing", 10)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %v %v", none, err)
	}

	if err := svc.Record(ctx, Entry{Action: "PLAY 0"}); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("expected ErrEmptySession, got %v", err)
	}
}

func TestMemoryService(t *testing.T) {
	exerciseService(t, NewMemoryService())
}

func TestSQLiteService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	svc, err := NewSQLiteService(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer svc.Close()
	exerciseService(t, svc)
}

func TestSQLiteServicePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	svc, err := NewSQLiteService(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := svc.Record(context.Background(), sampleEntries("s1", 1)[0]); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteService(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.List(context.Background(), "s1", 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected persisted entry, got %v %v", got, err)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"", ModeMemory, false},
		{"MEM", ModeMemory, false},
		{"local", ModeSQLite, false},
		{" sqlite ", ModeSQLite, false},
		{"postgresql", ModePostgres, false},
		{"db", ModePostgres, false},
		{"redis", "redis", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseMode(%q) err = %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNewServiceFromEnvSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("JOURNAL_MODE", "local")
	t.Setenv("JOURNAL_SQLITE_PATH", path)

	svc, mode, err := NewServiceFromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	defer svc.Close()
	if mode != ModeSQLite {
		t.Fatalf("mode = %q", mode)
	}
	if _, ok := svc.(*SQLiteService); !ok {
		t.Fatalf("expected *SQLiteService, got %T", svc)
	}
}

func TestNewServiceFromEnvRejectsUnknownMode(t *testing.T) {
	t.Setenv("JOURNAL_MODE", "redis")
	if _, _, err := NewServiceFromEnv(); err == nil {
		t.Fatalf("expected error")
	}
}
