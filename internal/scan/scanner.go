package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/logger"
	"github.com/lanehart/udpscout/internal/probe"
)

// DefaultRateLimit caps concurrent probe attempts when the caller does not
// set a limit of their own
const DefaultRateLimit = 100

// ScanService implements our scan orchestrator over an attempt executor
type ScanService struct {
	executor     Executor
	eventManager event.Manager
	log          logger.Logger
}

// NewScanService returns a new ScanService
func NewScanService(executor Executor, eventManager event.Manager) *ScanService {
	return &ScanService{
		executor:     executor,
		eventManager: eventManager,
		log:          logger.New(),
	}
}

// unit is one (target, port) pair with its dedicated probe instance
type unit struct {
	target string
	port   int
	probe  probe.Probe
}

// Scan probes every (target, port) unit in the config and aggregates the
// results. Targets are scanned in parallel behind a global admission gate;
// each unit retries filtered and errored attempts up to conf.Retries more
// times and keeps the status of its last attempt.
func (s *ScanService) Scan(ctx context.Context, conf *Config) (*Summary, error) {
	if err := validate(conf); err != nil {
		return nil, err
	}

	rateLimit := conf.RateLimit

	if rateLimit == 0 {
		rateLimit = DefaultRateLimit
	}

	units := expandUnits(conf)

	s.log.Info().
		Int("targets", len(conf.Targets)).
		Int("units", len(units)).
		Int("rateLimit", rateLimit).
		Msg("starting scan")

	start := time.Now()

	// global admission gate shared by every target
	gate := make(chan struct{}, rateLimit)

	var wg sync.WaitGroup

	var mux sync.Mutex

	results := []*Result{}

	for _, u := range units {
		wg.Add(1)

		go func(u unit) {
			defer wg.Done()

			select {
			case gate <- struct{}{}:
			case <-ctx.Done():
				return
			}

			defer func() { <-gate }()

			result := s.scanUnit(ctx, u, conf)

			if result == nil {
				// abandoned by cancellation
				return
			}

			if result.Status == StatusOpen {
				s.eventManager.Send(event.Event{
					Type:    event.ServiceFoundEventType,
					Payload: result,
				})
			}

			mux.Lock()
			results = append(results, result)
			mux.Unlock()
		}(u)
	}

	wg.Wait()

	summary := summarize(results, time.Since(start))

	s.eventManager.Send(event.Event{
		Type:    event.ScanCompleteEventType,
		Payload: summary,
	})

	s.log.Info().
		Int("attempted", summary.TotalAttempted).
		Int("open", summary.OpenCount).
		Int("filtered", summary.FilteredCount).
		Int("errors", summary.ErrorCount).
		Str("elapsed", summary.Elapsed.String()).
		Msg("scan complete")

	return summary, nil
}

// scanUnit runs a single unit through its retry loop and returns its final
// result, or nil if the scan was canceled before the unit finished
func (s *ScanService) scanUnit(ctx context.Context, u unit, conf *Config) *Result {
	var outcome *Outcome

	for attempt := 0; attempt <= conf.Retries; attempt++ {
		outcome = s.executor.Attempt(ctx, u.target, u.port, u.probe, conf.Timeout)

		if ctx.Err() != nil {
			return nil
		}

		if outcome.Status == StatusOpen {
			break
		}
	}

	result := &Result{
		Target:       u.target,
		Port:         u.port,
		Service:      u.probe.Name(),
		Status:       outcome.Status,
		ResponseSize: outcome.ResponseSize,
		Error:        outcome.Error,
	}

	if outcome.Status == StatusOpen {
		result.Details = u.probe.Parse(outcome.Response)
	}

	return result
}

// expandUnits crosses targets with ports, giving every unit its own probe
// instance. Ports with no registered probe are dropped.
func expandUnits(conf *Config) []unit {
	units := []unit{}

	for _, target := range conf.Targets {
		for _, port := range conf.Ports {
			p, ok := probe.Lookup(port)

			if !ok {
				continue
			}

			units = append(units, unit{
				target: target,
				port:   port,
				probe:  p,
			})
		}
	}

	return units
}

func summarize(results []*Result, elapsed time.Duration) *Summary {
	summary := &Summary{
		TotalAttempted: len(results),
		Elapsed:        elapsed,
	}

	for _, result := range results {
		switch result.Status {
		case StatusOpen:
			summary.OpenCount++
			summary.Results = append(summary.Results, result)
		case StatusFiltered:
			summary.FilteredCount++
		case StatusError:
			summary.ErrorCount++
		}
	}

	sort.Slice(summary.Results, func(i, j int) bool {
		if summary.Results[i].Target != summary.Results[j].Target {
			return summary.Results[i].Target < summary.Results[j].Target
		}

		return summary.Results[i].Port < summary.Results[j].Port
	})

	return summary
}

func validate(conf *Config) error {
	if conf.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", conf.Timeout)
	}

	if conf.Retries < 0 {
		return fmt.Errorf("retries cannot be negative: %d", conf.Retries)
	}

	if conf.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %d", conf.RateLimit)
	}

	if len(conf.Targets) == 0 {
		return fmt.Errorf("no targets to scan")
	}

	if len(conf.Ports) == 0 {
		return fmt.Errorf("no ports to scan")
	}

	for _, port := range conf.Ports {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
	}

	return nil
}
