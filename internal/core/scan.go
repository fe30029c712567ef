package core

import (
	"context"
	"time"

	"github.com/lanehart/udpscout/internal/inventory"
	"github.com/lanehart/udpscout/internal/scan"
	"github.com/lanehart/udpscout/internal/target"
)

// Scan expands the active profile's targets, runs the scan, and records
// every open finding in the inventory. Previously recorded services that
// fell inside the scanned scope but no longer answer are marked offline.
func (c *Core) Scan(ctx context.Context) (*scan.Summary, error) {
	targets := []string{}

	for _, spec := range c.conf.Targets {
		hosts, err := target.ParseTargetSpec(spec)

		if err != nil {
			c.events.ReportFatalError(err)
			return nil, err
		}

		targets = append(targets, hosts...)
	}

	targets = target.Resolve(targets)

	scanConf := &scan.Config{
		Targets:   targets,
		Ports:     c.conf.Ports,
		Timeout:   time.Duration(c.conf.TimeoutSeconds) * time.Second,
		Retries:   c.conf.Retries,
		RateLimit: c.conf.RateLimit,
	}

	summary, err := c.scanService.Scan(ctx, scanConf)

	if err != nil {
		c.events.ReportFatalError(err)
		return nil, err
	}

	for _, result := range summary.Results {
		if err := c.inventory.RecordResult(result); err != nil {
			c.log.Error().Err(err).
				Str("target", result.Target).
				Int("port", result.Port).
				Msg("failed to record finding")

			c.events.ReportError(err)
		}
	}

	c.markStaleServicesOffline(scanConf, summary)

	return summary, nil
}

// markStaleServicesOffline flags known open services inside the scanned
// scope that produced no response this time around
func (c *Core) markStaleServicesOffline(scanConf *scan.Config, summary *scan.Summary) {
	known, err := c.inventory.GetAllServices()

	if err != nil {
		c.events.ReportError(err)
		return
	}

	scannedTargets := map[string]bool{}

	for _, t := range scanConf.Targets {
		scannedTargets[t] = true
	}

	scannedPorts := map[int]bool{}

	for _, p := range scanConf.Ports {
		scannedPorts[p] = true
	}

	open := map[string]bool{}

	for _, result := range summary.Results {
		open[inventory.ServiceID(result.Target, result.Port)] = true
	}

	for _, svc := range known {
		if svc.Status != inventory.StatusOpen {
			continue
		}

		if !scannedTargets[svc.Target] || !scannedPorts[svc.Port] {
			continue
		}

		if open[svc.ID] {
			continue
		}

		if err := c.inventory.MarkServiceOffline(svc.Target, svc.Port); err != nil {
			c.events.ReportError(err)
		}
	}
}
