package replay

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// WireReplayTape is the on-disk form: each event is a protobuf Struct
// envelope, base64 encoded.
type WireReplayTape struct {
	TapeVersion int               `json:"tapeVersion"`
	SessionID   string            `json:"sessionId"`
	GameID      string            `json:"gameId,omitempty"`
	PlayerName  string            `json:"playerName,omitempty"`
	Brain       string            `json:"brain"`
	Seed        int64             `json:"seed,string"`
	Events      []WireReplayEvent `json:"events"`
}

type WireReplayEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireReplayTape(tape *ReplayTape) (*WireReplayTape, error) {
	if tape == nil {
		return nil, nil
	}
	out := &WireReplayTape{
		TapeVersion: tape.TapeVersion,
		SessionID:   tape.SessionID,
		GameID:      tape.GameID,
		PlayerName:  tape.PlayerName,
		Brain:       tape.Brain,
		Seed:        tape.Seed,
		Events:      make([]WireReplayEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		raw, err := envelopeMarshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal event %d: %w", e.Seq, err)
		}
		out.Events = append(out.Events, WireReplayEvent{
			Type:        string(e.Direction),
			Seq:         e.Seq,
			EnvelopeB64: base64.StdEncoding.EncodeToString(raw),
		})
	}
	return out, nil
}

func FromWireReplayTape(w *WireReplayTape) (*ReplayTape, error) {
	if w == nil {
		return nil, fmt.Errorf("nil wire tape")
	}
	if w.TapeVersion != CurrentTapeVersion {
		return nil, fmt.Errorf("unsupported tape version %d", w.TapeVersion)
	}
	tape := &ReplayTape{
		TapeVersion: w.TapeVersion,
		SessionID:   w.SessionID,
		GameID:      w.GameID,
		PlayerName:  w.PlayerName,
		Brain:       w.Brain,
		Seed:        w.Seed,
		Events:      make([]ReplayEvent, 0, len(w.Events)),
	}
	for _, we := range w.Events {
		raw, err := base64.StdEncoding.DecodeString(we.EnvelopeB64)
		if err != nil {
			return nil, fmt.Errorf("event %d: bad base64: %w", we.Seq, err)
		}
		e, err := envelopeUnmarshal(raw)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", we.Seq, err)
		}
		e.Seq = we.Seq
		tape.Events = append(tape.Events, e)
	}
	return tape, nil
}

// SaveFile writes tape as wire JSON, creating parent directories.
func SaveFile(path string, tape *ReplayTape) error {
	w, err := ToWireReplayTape(tape)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	if parent := filepath.Dir(path); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func LoadFile(path string) (*ReplayTape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w WireReplayTape
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse tape %s: %w", path, err)
	}
	return FromWireReplayTape(&w)
}

func envelopeMarshal(e ReplayEvent) ([]byte, error) {
	st, err := structpb.NewStruct(map[string]any{
		"direction": string(e.Direction),
		"line":      e.Line,
		"at_ms":     float64(e.AtMs),
	})
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(st)
}

func envelopeUnmarshal(raw []byte) (ReplayEvent, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(raw, &st); err != nil {
		return ReplayEvent{}, err
	}
	fields := st.GetFields()
	dir := Direction(fields["direction"].GetStringValue())
	if dir != DirectionIn && dir != DirectionOut {
		return ReplayEvent{}, fmt.Errorf("unknown direction %q", dir)
	}
	return ReplayEvent{
		Direction: dir,
		Line:      fields["line"].GetStringValue(),
		AtMs:      int64(fields["at_ms"].GetNumberValue()),
	}, nil
}
