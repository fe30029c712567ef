package scan

import (
	"time"

	"github.com/lanehart/udpscout/internal/probe"
)

// Status is the classification of a probed (target, port) unit
type Status string

const (
	// StatusOpen a response datagram was received and decoded
	StatusOpen Status = "open"
	// StatusFiltered no response arrived within the attempt timeout
	StatusFiltered Status = "filtered"
	// StatusError a transport error other than a timeout occurred
	StatusError Status = "error"
)

// Outcome is the result of a single probe attempt against one port
type Outcome struct {
	Status       Status
	Response     []byte
	ResponseSize int
	Error        string
}

// Result is the final classification of one (target, port) unit after all
// retries are exhausted
type Result struct {
	Target       string        `json:"target"`
	Port         int           `json:"port"`
	Service      string        `json:"service"`
	Status       Status        `json:"status"`
	Details      probe.Details `json:"details,omitempty"`
	ResponseSize int           `json:"response_size"`
	Error        string        `json:"error,omitempty"`
}

// Summary aggregates a whole scan. Results holds open units only, sorted by
// target then port; filtered and errored units are reflected in the counters.
type Summary struct {
	Results        []*Result
	TotalAttempted int
	OpenCount      int
	FilteredCount  int
	ErrorCount     int
	Elapsed        time.Duration
}

// Config is the per-scan settings bundle supplied by the caller
type Config struct {
	Targets   []string
	Ports     []int
	Timeout   time.Duration
	Retries   int
	RateLimit int
}
