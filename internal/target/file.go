package target

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseTargetsFile reads target specs from a hosts file, one or more per
// line, skipping blank lines and # comments. Entries are expanded like
// command line specs and de-duplicated preserving first-seen order.
func ParseTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	targets := []string{}
	seen := map[string]bool{}

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()

		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}

		for _, field := range strings.Fields(line) {
			hosts, err := ParseTargetSpec(field)

			if err != nil {
				return nil, err
			}

			for _, host := range hosts {
				if !seen[host] {
					seen[host] = true
					targets = append(targets, host)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets found in %s", path)
	}

	return targets, nil
}
