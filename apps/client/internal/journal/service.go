package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultListLimit = 200

var ErrEmptySession = errors.New("empty session id")

// Entry is one decision the client committed to.
type Entry struct {
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	GameID    string    `json:"game_id"`
	PlayerID  int       `json:"player_id"`
	Round     int       `json:"round"`
	Turn      int       `json:"turn"`
	Hand      []string  `json:"hand"`
	Action    string    `json:"action"`
	Rule      string    `json:"rule"`
	At        time.Time `json:"at"`
}

type Service interface {
	Close() error
	Record(ctx context.Context, entry Entry) error
	// List returns up to limit entries of a session, oldest first.
	List(ctx context.Context, sessionID string, limit int) ([]Entry, error)
}

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

// ParseMode normalizes a JOURNAL_MODE value.
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", ModeMemory, "mem":
		return ModeMemory, nil
	case ModeSQLite, "local":
		return ModeSQLite, nil
	case ModePostgres, "postgresql", "db":
		return ModePostgres, nil
	default:
		return mode, fmt.Errorf("invalid JOURNAL_MODE %q (supported: %s, %s, %s)", mode, ModeMemory, ModeSQLite, ModePostgres)
	}
}

func NewServiceFromEnv() (Service, string, error) {
	mode, err := ParseMode(os.Getenv("JOURNAL_MODE"))
	if err != nil {
		return nil, mode, err
	}

	switch mode {
	case ModeSQLite:
		service, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return service, mode, nil
	case ModePostgres:
		service, err := NewPostgresServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return service, mode, nil
	default:
		return NewMemoryService(), mode, nil
	}
}

type MemoryService struct {
	mu      sync.Mutex
	entries []Entry
	seen    map[string]struct{}
}

func NewMemoryService() *MemoryService {
	return &MemoryService{seen: make(map[string]struct{})}
}

func (m *MemoryService) Close() error { return nil }

func (m *MemoryService) Record(_ context.Context, entry Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	key := fmt.Sprintf("%s/%d", entry.SessionID, entry.Seq)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.seen[key]; dup {
		return nil
	}
	m.seen[key] = struct{}{}
	entry.Hand = append([]string(nil), entry.Hand...)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryService) List(_ context.Context, sessionID string, limit int) ([]Entry, error) {
	limit = normalizeLimit(limit)

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0)
	for _, e := range m.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func validateEntry(entry Entry) error {
	if strings.TrimSpace(entry.SessionID) == "" {
		return ErrEmptySession
	}
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("journal entry %d: empty action", entry.Seq)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func encodeHand(hand []string) (string, error) {
	if hand == nil {
		hand = []string{}
	}
	raw, err := json.Marshal(hand)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeHand(raw string) ([]string, error) {
	hand := []string{}
	if strings.TrimSpace(raw) == "" {
		return hand, nil
	}
	if err := json.Unmarshal([]byte(raw), &hand); err != nil {
		return nil, err
	}
	return hand, nil
}

// reverse flips rows read newest-first into oldest-first order.
func reverse(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
