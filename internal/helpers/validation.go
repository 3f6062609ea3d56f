// Package helpers provides validation utilities.
package helpers

import (
	"fmt"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// ValidateHost checks that a host name is non-empty and carries no path or whitespace.
func ValidateHost(host string) error {
	if host == "" {
		return fmt.Errorf("host is empty")
	}
	if strings.ContainsAny(host, "/ \t") {
		return fmt.Errorf("host %q contains invalid characters", host)
	}
	return nil
}

// ValidatePort returns a validation error when port is not a usable TCP port
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return domain.NewValidationError(field, fmt.Sprintf("port %d is out of range 1-65535", port))
	}
	return nil
}

// DeduplicateHosts drops repeated hosts, keeping first-seen order
func DeduplicateHosts(hosts []string) []string {
	seen := make(map[string]bool, len(hosts))
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
