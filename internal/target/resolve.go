package target

import (
	"net"

	"github.com/lanehart/udpscout/internal/logger"
)

// Resolve maps hostnames in the list to IPv4 addresses. Literal IPs pass
// through untouched; hosts that fail to resolve are dropped with a warning.
func Resolve(targets []string) []string {
	log := logger.New()

	resolved := []string{}
	seen := map[string]bool{}

	add := func(host string) {
		if !seen[host] {
			seen[host] = true
			resolved = append(resolved, host)
		}
	}

	for _, t := range targets {
		if ip := net.ParseIP(t); ip != nil {
			add(t)
			continue
		}

		addr, err := net.ResolveIPAddr("ip4", t)

		if err != nil {
			log.Warn().Str("host", t).Err(err).Msg("failed to resolve host")
			continue
		}

		add(addr.IP.String())
	}

	return resolved
}
