package replay

import "fmt"

// ReplayError pinpoints where a tape diverged from a fresh run.
type ReplayError struct {
	StepIndex int32  `json:"step_index"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Expected  string `json:"expected,omitempty"`
	Got       string `json:"got,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}
