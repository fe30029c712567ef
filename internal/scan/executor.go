package scan

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/lanehart/udpscout/internal/logger"
	"github.com/lanehart/udpscout/internal/probe"
)

const maxDatagramSize = 65535

// UDPExecutor performs probe attempts over transient UDP sockets
type UDPExecutor struct {
	log logger.Logger
}

// NewUDPExecutor returns a new UDPExecutor
func NewUDPExecutor() *UDPExecutor {
	return &UDPExecutor{
		log: logger.New(),
	}
}

// Attempt sends the probe's payload to target:port and waits up to timeout
// for a single response datagram. A received datagram means open, a timeout
// means filtered, and any other transport failure means error. The socket is
// released on every exit path and nothing raises past this boundary.
func (e *UDPExecutor) Attempt(
	ctx context.Context,
	target string,
	port int,
	p probe.Probe,
	timeout time.Duration,
) *Outcome {
	dialer := net.Dialer{Timeout: timeout}

	conn, err := dialer.DialContext(ctx, "udp", fmt.Sprintf("%s:%d", target, port))

	if err != nil {
		return &Outcome{
			Status: StatusError,
			Error:  err.Error(),
		}
	}

	defer conn.Close()

	// close the socket early if the scan is canceled so the read below
	// unblocks immediately
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return &Outcome{
			Status: StatusError,
			Error:  err.Error(),
		}
	}

	payload := p.Build()

	if _, err := conn.Write(payload); err != nil {
		return &Outcome{
			Status: StatusError,
			Error:  err.Error(),
		}
	}

	buf := make([]byte, maxDatagramSize)

	n, err := conn.Read(buf)

	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return &Outcome{Status: StatusFiltered}
		}

		return &Outcome{
			Status: StatusError,
			Error:  err.Error(),
		}
	}

	response := make([]byte, n)
	copy(response, buf[:n])

	e.log.Debug().
		Str("target", target).
		Int("port", port).
		Int("bytes", n).
		Msg("received response datagram")

	return &Outcome{
		Status:       StatusOpen,
		Response:     response,
		ResponseSize: n,
	}
}
