// Command replaycheck re-runs a recorded session tape and reports whether the
// brain reproduces every play the client sent.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"sushigo-lite/replay"
)

type checkResponse struct {
	OK        bool                `json:"ok"`
	SessionID string              `json:"session_id,omitempty"`
	Brain     string              `json:"brain,omitempty"`
	Seed      int64               `json:"seed,string,omitempty"`
	Events    int                 `json:"events"`
	Error     *replay.ReplayError `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: replaycheck <tape.json>")
		return 1
	}
	resp := check(args[0])
	fmt.Fprintln(stdout, mustJSON(resp))
	if !resp.OK {
		return 1
	}
	return 0
}

func check(path string) checkResponse {
	tape, err := replay.LoadFile(path)
	if err != nil {
		return checkResponse{
			OK:    false,
			Error: &replay.ReplayError{StepIndex: -1, Reason: "load_failed", Message: err.Error()},
		}
	}
	resp := checkResponse{
		OK:        true,
		SessionID: tape.SessionID,
		Brain:     tape.Brain,
		Seed:      tape.Seed,
		Events:    len(tape.Events),
	}
	if err := replay.VerifyTape(tape, nil); err != nil {
		resp.OK = false
		var replayErr *replay.ReplayError
		if errors.As(err, &replayErr) {
			resp.Error = replayErr
		} else {
			resp.Error = &replay.ReplayError{StepIndex: -1, Reason: "verify_failed", Message: err.Error()}
		}
	}
	return resp
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		fallback := checkResponse{
			OK:    false,
			Error: &replay.ReplayError{StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		}
		b2, _ := json.Marshal(fallback)
		return string(b2)
	}
	return string(b)
}
