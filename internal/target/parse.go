package target

import (
	"encoding/binary"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/lanehart/udpscout/internal/probe"
	"github.com/projectdiscovery/mapcidr"
)

// maxExpansion caps how many hosts a single CIDR or dash range may expand to
const maxExpansion = 1024

// ParsePorts expands a port spec into a validated ascending list. Specs are
// comma separated and each entry is a single port or a dash range; the
// keyword "common" expands to the curated common UDP port list.
func ParsePorts(spec string) ([]int, error) {
	ports := []int{}
	seen := map[int]bool{}

	add := func(port int) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port out of range: %d", port)
		}

		if !seen[port] {
			seen[port] = true
			ports = append(ports, port)
		}

		return nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		if part == "common" {
			for _, port := range probe.CommonPorts() {
				if err := add(port); err != nil {
					return nil, err
				}
			}

			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			low, err := strconv.Atoi(strings.TrimSpace(start))

			if err != nil {
				return nil, fmt.Errorf("invalid port range %q: %w", part, err)
			}

			high, err := strconv.Atoi(strings.TrimSpace(end))

			if err != nil {
				return nil, fmt.Errorf("invalid port range %q: %w", part, err)
			}

			if low > high {
				return nil, fmt.Errorf("invalid port range %q: start exceeds end", part)
			}

			for port := low; port <= high; port++ {
				if err := add(port); err != nil {
					return nil, err
				}
			}

			continue
		}

		port, err := strconv.Atoi(part)

		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", part, err)
		}

		if err := add(port); err != nil {
			return nil, err
		}
	}

	if len(ports) == 0 {
		return nil, fmt.Errorf("port spec %q expands to nothing", spec)
	}

	sort.Ints(ports)

	return ports, nil
}

// ParseTargetSpec expands a target spec into individual hosts preserving
// first-seen order. Specs are comma separated and each entry is a single
// IP or hostname, a CIDR block, or a dash range (full-IP or last-octet).
func ParseTargetSpec(spec string) ([]string, error) {
	targets := []string{}
	seen := map[string]bool{}

	add := func(host string) {
		if !seen[host] {
			seen[host] = true
			targets = append(targets, host)
		}
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		switch {
		case strings.Contains(part, "/"):
			hosts, err := expandCIDR(part)

			if err != nil {
				return nil, err
			}

			for _, host := range hosts {
				add(host)
			}
		case strings.Contains(part, "-"):
			hosts, err := expandRange(part)

			if err != nil {
				return nil, err
			}

			for _, host := range hosts {
				add(host)
			}
		default:
			add(part)
		}
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("target spec %q expands to nothing", spec)
	}

	return targets, nil
}

func expandCIDR(cidr string) ([]string, error) {
	_, ipnet, err := net.ParseCIDR(cidr)

	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}

	ones, bits := ipnet.Mask.Size()

	if bits-ones > 10 {
		return nil, fmt.Errorf("CIDR %q expands beyond %d hosts", cidr, maxExpansion)
	}

	return mapcidr.IPAddresses(cidr)
}

// expandRange expands "192.168.1.10-192.168.1.20" and the last-octet
// shorthand "192.168.1.10-20"
func expandRange(spec string) ([]string, error) {
	start, end, _ := strings.Cut(spec, "-")

	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	startIP := net.ParseIP(start)

	if startIP == nil || startIP.To4() == nil {
		return nil, fmt.Errorf("invalid range %q: bad start address", spec)
	}

	if !strings.Contains(end, ".") {
		// last-octet shorthand
		prefix := start[:strings.LastIndex(start, ".")+1]
		end = prefix + end
	}

	endIP := net.ParseIP(end)

	if endIP == nil || endIP.To4() == nil {
		return nil, fmt.Errorf("invalid range %q: bad end address", spec)
	}

	low := binary.BigEndian.Uint32(startIP.To4())
	high := binary.BigEndian.Uint32(endIP.To4())

	if low > high {
		return nil, fmt.Errorf("invalid range %q: start exceeds end", spec)
	}

	if high-low+1 > maxExpansion {
		return nil, fmt.Errorf("range %q expands beyond %d hosts", spec, maxExpansion)
	}

	hosts := []string{}

	for n := low; n <= high; n++ {
		ip := make(net.IP, 4)
		binary.BigEndian.PutUint32(ip, n)
		hosts = append(hosts, ip.String())
	}

	return hosts, nil
}
