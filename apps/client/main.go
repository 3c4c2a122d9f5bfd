package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sushigo-lite/apps/client/internal/config"
	"sushigo-lite/apps/client/internal/gateway"
	"sushigo-lite/apps/client/internal/journal"
	"sushigo-lite/apps/client/internal/logging"
	"sushigo-lite/apps/client/internal/session"
	"sushigo-lite/replay"
	"sushigo-lite/sushi/npc"
)

const usage = "Usage: sushigo <host> <port> <game_id> <player_name>"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	if len(args) != 4 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "[Client] %v\n", err)
		return 1
	}
	cfg, err := config.Load(args, os.Getenv)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "[Client] %v\n%s\n", err, usage)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "[Client] %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	journalService, journalMode, err := journal.NewServiceFromEnv()
	if err != nil {
		logger.Error("init journal", zap.String("mode", journalMode), zap.Error(err))
		return 1
	}
	defer journalService.Close()

	seed := npc.ResolveSeed(cfg.Seed)
	brain, err := npc.NewBrain(cfg.Brain, seed)
	if err != nil {
		logger.Error("init brain", zap.Error(err))
		return 1
	}

	sessionID := uuid.NewString()
	var recorder *replay.Recorder
	if cfg.TapePath != "" {
		recorder = replay.NewRecorder(sessionID, brain.Name(), seed)
	}

	logger.Info("starting",
		zap.String("addr", cfg.Addr()),
		zap.String("transport", cfg.Transport),
		zap.String("game_id", cfg.GameID),
		zap.String("player", cfg.PlayerName),
		zap.String("brain", brain.Name()),
		zap.Int64("seed", seed),
		zap.String("journal", journalMode),
		zap.String("session_id", sessionID),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(session.Options{
		SessionID:  sessionID,
		GameID:     cfg.GameID,
		PlayerName: cfg.PlayerName,
		Brain:      brain,
		Journal:    journalService,
		Recorder:   recorder,
		Logger:     logger,
	})
	runErr := sess.Run(ctx, func(ctx context.Context) (gateway.Conn, error) {
		return gateway.Dial(ctx, cfg.Transport, cfg.Addr(), cfg.GatewayOptions())
	})

	if recorder != nil {
		if err := replay.SaveFile(cfg.TapePath, recorder.Tape()); err != nil {
			logger.Warn("save tape", zap.String("path", cfg.TapePath), zap.Error(err))
		} else {
			logger.Info("tape saved", zap.String("path", cfg.TapePath))
		}
	}

	switch {
	case runErr == nil:
		return 0
	case errors.Is(runErr, context.Canceled):
		logger.Info("interrupted")
		return 0
	case errors.Is(runErr, session.ErrJoinRejected):
		logger.Error("failed to join", zap.Error(runErr))
		return 1
	default:
		logger.Error("session failed", zap.Stringer("phase", sess.Phase()), zap.Error(runErr))
		return 1
	}
}
