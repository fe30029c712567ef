package probe

import (
	"fmt"
	"time"
)

// Syslog probes syslog collectors (port 514) by sending a harmless RFC 3164
// style test message. Most collectors never answer, so any response at all
// is itself a finding.
type Syslog struct{}

// NewSyslog returns a new syslog probe
func NewSyslog() *Syslog {
	return &Syslog{}
}

func (p *Syslog) Name() string {
	return "Syslog"
}

func (p *Syslog) Build() []byte {
	// facility local0 (16), severity info (6)
	priority := 16*8 + 6
	timestamp := time.Now().Format("Jan 02 15:04:05")

	msg := fmt.Sprintf("<%d>%s scanner UDP Discovery Tool Test Message", priority, timestamp)

	return []byte(msg)
}

func (p *Syslog) Parse(response []byte) Details {
	if len(response) == 0 {
		return nil
	}

	return Details{
		"protocol":          "Syslog",
		"response_received": true,
		"response_size":     len(response),
	}
}
