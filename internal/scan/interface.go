package scan

import (
	"context"
	"time"

	"github.com/lanehart/udpscout/internal/probe"
)

//go:generate mockgen -destination=../mock/scan/mock_scan.go -package=mock_scan . Executor,Service

// Executor interface for performing a single probe attempt
type Executor interface {
	Attempt(ctx context.Context, target string, port int, p probe.Probe, timeout time.Duration) *Outcome
}

// Service interface for running a full scan
type Service interface {
	Scan(ctx context.Context, conf *Config) (*Summary, error)
}
