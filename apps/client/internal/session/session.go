package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sushigo-lite/apps/client/internal/gateway"
	"sushigo-lite/apps/client/internal/journal"
	"sushigo-lite/protocol"
	"sushigo-lite/replay"
	"sushigo-lite/sushi"
	"sushigo-lite/sushi/npc"
)

// ErrJoinRejected is returned when the server answers JOIN with ERROR.
var ErrJoinRejected = errors.New("join rejected")

// Dialer opens the transport for one session.
type Dialer func(ctx context.Context) (gateway.Conn, error)

type Options struct {
	SessionID  string
	GameID     string
	PlayerName string

	Brain npc.BrainDecider
	// Journal and Recorder are optional.
	Journal  journal.Service
	Recorder *replay.Recorder
	Logger   *zap.Logger
}

// Session drives one game from JOIN to GAME_END. Run must be called once.
type Session struct {
	opts   Options
	logger *zap.Logger

	conn  gateway.Conn
	phase Phase
	state *sushi.State
	seq   int
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Brain == nil {
		opts.Brain = npc.NewRuleBrain(npc.ResolveSeed(0))
	}
	return &Session{
		opts:   opts,
		logger: logger.Named("session").With(zap.String("session_id", opts.SessionID)),
		phase:  PhaseConnecting,
	}
}

func (s *Session) Phase() Phase { return s.phase }

// State is nil until the join has been accepted.
func (s *Session) State() *sushi.State { return s.state }

// Run connects, joins, readies up and plays until GAME_END, a transport
// failure or ctx cancellation. The transport is always closed on return.
func (s *Session) Run(ctx context.Context, dial Dialer) (err error) {
	defer s.setPhase(PhaseEnded)

	s.setPhase(PhaseConnecting)
	conn, err := dial(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.conn = conn
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Debug("close transport", zap.Error(cerr))
		}
	}()
	stopWatch := s.watch(ctx)
	defer stopWatch()

	defer func() {
		if err != nil && ctx.Err() != nil {
			err = ctx.Err()
		}
	}()

	s.setPhase(PhaseJoining)
	if err := s.send(protocol.Join(s.opts.GameID, s.opts.PlayerName)); err != nil {
		return err
	}
	if err := s.awaitJoin(); err != nil {
		return err
	}

	s.setPhase(PhaseAwaitingReady)
	if err := s.send(protocol.Ready()); err != nil {
		return err
	}

	s.setPhase(PhasePlaying)
	for {
		msg, ok, err := s.next()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		stop, err := s.handle(ctx, msg)
		if err != nil {
			return err
		}
		if stop {
			s.logger.Info("game over", zap.String("result", msg.Raw), zap.Int("round", s.state.Round))
			return nil
		}
	}
}

// watch closes the transport when ctx is done so a blocked Receive returns.
func (s *Session) watch(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info("disconnecting")
			_ = s.conn.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (s *Session) awaitJoin() error {
	for {
		msg, ok, err := s.next()
		if err != nil {
			return fmt.Errorf("join: %w", err)
		}
		if !ok {
			continue
		}
		switch msg.Kind {
		case protocol.KindWelcome:
			s.state = sushi.NewState(msg.GameID, msg.PlayerID)
			if s.opts.Recorder != nil {
				s.opts.Recorder.SetGame(msg.GameID, s.opts.PlayerName)
			}
			s.logger.Info("joined",
				zap.String("game_id", msg.GameID),
				zap.Int("player_id", msg.PlayerID),
				zap.String("brain", s.opts.Brain.Name()),
			)
			return nil
		case protocol.KindError:
			s.logger.Warn("join rejected", zap.String("reason", msg.Reason))
			return fmt.Errorf("%w: %s", ErrJoinRejected, msg.Reason)
		default:
			s.logger.Debug("skip before welcome", zap.Stringer("kind", msg.Kind))
		}
	}
}

// next reads one line and decodes it. ok is false for lines that should be
// skipped: blank ones and recognised messages with unparseable fields.
func (s *Session) next() (protocol.Message, bool, error) {
	line, err := s.conn.Receive()
	if err != nil {
		return protocol.Message{}, false, err
	}
	if s.opts.Recorder != nil {
		s.opts.Recorder.In(line)
	}
	s.logger.Debug("<<< " + line)

	msg, err := protocol.Decode(line)
	if err != nil {
		var de *protocol.DecodeError
		switch {
		case errors.Is(err, protocol.ErrEmptyLine):
		case errors.As(err, &de):
			s.logger.Warn("skip malformed message", zap.Error(err))
		default:
			return protocol.Message{}, false, err
		}
		return protocol.Message{}, false, nil
	}
	return msg, true, nil
}

func (s *Session) handle(ctx context.Context, msg protocol.Message) (bool, error) {
	stop := s.state.Apply(msg)

	switch msg.Kind {
	case protocol.KindHand:
		if len(s.state.Hand) > 0 {
			return stop, s.playTurn(ctx)
		}
	case protocol.KindRoundStart:
		s.logger.Info("round start", zap.Int("round", msg.Round))
	case protocol.KindRoundEnd:
		s.logger.Info("round end", zap.Int("round", s.state.Round))
	case protocol.KindError:
		s.logger.Warn("server error", zap.String("reason", msg.Reason))
	case protocol.KindOK, protocol.KindWaiting, protocol.KindPlayed, protocol.KindUnknown:
	}
	return stop, nil
}

func (s *Session) playTurn(ctx context.Context) error {
	hand := s.state.Hand.Names()
	round, turn := s.state.Round, s.state.Turn

	d, err := npc.PlayTurn(s.state, s.opts.Brain)
	if err != nil {
		s.logger.Error("decision rejected", zap.Error(err), zap.Strings("hand", hand))
		return nil
	}
	if !d.OK {
		return nil
	}

	cmd := d.Action.Command()
	s.logger.Info("play",
		zap.String("rule", d.Rule),
		zap.Ints("indices", d.Action.Indices()),
		zap.Strings("cards", cardNames(hand, d.Action)),
		zap.Int("round", round),
		zap.Int("turn", turn),
	)
	if err := s.send(cmd); err != nil {
		return err
	}

	s.seq++
	s.journal(ctx, journal.Entry{
		SessionID: s.opts.SessionID,
		Seq:       s.seq,
		GameID:    s.state.GameID,
		PlayerID:  s.state.PlayerID,
		Round:     round,
		Turn:      turn,
		Hand:      hand,
		Action:    cmd.String(),
		Rule:      d.Rule,
		At:        time.Now(),
	})
	return nil
}

func (s *Session) journal(ctx context.Context, entry journal.Entry) {
	if s.opts.Journal == nil {
		return
	}
	if err := s.opts.Journal.Record(ctx, entry); err != nil {
		s.logger.Warn("journal record failed", zap.Error(err), zap.Int("seq", entry.Seq))
	}
}

func (s *Session) send(cmd protocol.Command) error {
	line := cmd.String()
	if err := s.conn.Send(line); err != nil {
		return fmt.Errorf("send %s: %w", cmd.Type, err)
	}
	if s.opts.Recorder != nil {
		s.opts.Recorder.Out(line)
	}
	s.logger.Debug(">>> " + line)
	return nil
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.logger.Debug("phase", zap.Stringer("from", s.phase), zap.Stringer("to", p))
	s.phase = p
}

func cardNames(hand []string, a sushi.Action) []string {
	out := make([]string, 0, 2)
	for _, i := range a.Indices() {
		if i >= 0 && i < len(hand) {
			out = append(out, hand[i])
		}
	}
	return out
}
