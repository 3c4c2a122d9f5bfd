package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sushigo-lite/apps/client/internal/gateway"
	"sushigo-lite/apps/client/internal/journal"
	"sushigo-lite/sushi/npc"
)

const (
	defaultWSPath      = "/ws"
	defaultDialTimeout = 10 * time.Second
)

var ErrArgCount = errors.New("expected 4 arguments: <host> <port> <game_id> <player_name>")

// Config is everything the client needs for one session.
type Config struct {
	Host       string
	Port       int
	GameID     string
	PlayerName string

	Transport      string
	WSPath         string
	DialTimeout    time.Duration
	ReceiveTimeout time.Duration

	Brain npc.BrainKind
	Seed  int64

	LogLevel  string
	LogFormat string

	JournalMode string
	TapePath    string
}

// LoadDotEnv reads .env style files into the process environment. Missing
// files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds a Config from the positional args and the environment
// looked up through getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	if len(args) != 4 {
		return Config{}, ErrArgCount
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	port, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid port %q: %w", args[1], err)
	}

	cfg := Config{
		Host:       strings.TrimSpace(args[0]),
		Port:       port,
		GameID:     strings.TrimSpace(args[2]),
		PlayerName: strings.TrimSpace(args[3]),

		Transport:   strings.ToLower(envOrDefault(getenv, "SUSHIGO_TRANSPORT", gateway.TransportTCP)),
		WSPath:      envOrDefault(getenv, "SUSHIGO_WS_PATH", defaultWSPath),
		Brain:       npc.BrainKind(strings.ToLower(envOrDefault(getenv, "SUSHIGO_BRAIN", string(npc.BrainRule)))),
		LogLevel:    strings.ToLower(envOrDefault(getenv, "SUSHIGO_LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(envOrDefault(getenv, "SUSHIGO_LOG_FORMAT", "console")),
		JournalMode: envOrDefault(getenv, "JOURNAL_MODE", journal.ModeMemory),
		TapePath:    strings.TrimSpace(getenv("REPLAY_TAPE_PATH")),
	}

	if cfg.DialTimeout, err = envDuration(getenv, "SUSHIGO_DIAL_TIMEOUT", defaultDialTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ReceiveTimeout, err = envDuration(getenv, "SUSHIGO_RECEIVE_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(getenv("SUSHIGO_SEED")); raw != "" {
		if cfg.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Config{}, fmt.Errorf("invalid SUSHIGO_SEED %q: %w", raw, err)
		}
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1..65535", c.Port)
	}
	if c.GameID == "" {
		return errors.New("game id is required")
	}
	if c.PlayerName == "" {
		return errors.New("player name is required")
	}
	if strings.ContainsAny(c.GameID, " \t\r\n") || strings.ContainsAny(c.PlayerName, " \t\r\n") {
		return errors.New("game id and player name must not contain whitespace")
	}
	switch c.Transport {
	case gateway.TransportTCP, gateway.TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", c.Transport, gateway.TransportTCP, gateway.TransportWebSocket)
	}
	if _, err := npc.ParseBrainKind(string(c.Brain)); err != nil {
		return err
	}
	if _, err := journal.ParseMode(c.JournalMode); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (supported: console, json)", c.LogFormat)
	}
	if c.DialTimeout < 0 || c.ReceiveTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Addr is the host:port pair to dial.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		DialTimeout:    c.DialTimeout,
		ReceiveTimeout: c.ReceiveTimeout,
		WSPath:         c.WSPath,
	}
}

func envOrDefault(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envDuration accepts Go durations ("1.5s") or bare seconds ("30").
func envDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
