package model

import "encoding/json"

// Job kinds accepted by the batch pool.
const (
	JobImpact      = "impact"
	JobWorth       = "worth"
	JobNegotiation = "negotiation"
)

// Job is one calculation request read from a batch input. Seq is the input
// position and orders the results.
type Job struct {
	Seq     int             `json:"seq"`
	Kind    string          `json:"kind"`
	Request json.RawMessage `json:"request"`
}

// JobResult is the outcome of a Job. Exactly one of Output and Error is set.
type JobResult struct {
	Seq    int    `json:"seq"`
	Kind   string `json:"kind"`
	Output any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
