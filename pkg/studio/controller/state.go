package controller

import "github.com/NethermindEth/prompt-studio/pkg/studio/content"

type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusLoading    Status = "loading"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// State is a snapshot of a controller's request lifecycle. Type is the
// content type captured when the request was submitted.
type State struct {
	Status Status       `json:"status"`
	Type   content.Type `json:"type,omitempty"`
	Result string       `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func (s State) Busy() bool {
	return s.Status == StatusLoading || s.Status == StatusValidating
}
