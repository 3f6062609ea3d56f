// Package helpers provides utility functions shared by the connection and CLI layers.
package helpers

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL removes trailing slashes from URLs to prevent double-slash issues
func NormalizeURL(urlStr string) string {
	return strings.TrimRight(urlStr, "/")
}

// URL2ServiceRobust parses a URL string and extracts the hostname.
// Adds scheme if missing to help url.Parse work correctly.
func URL2ServiceRobust(urlStr string) (string, error) {
	if !strings.Contains(urlStr, "://") {
		urlStr = "http://" + urlStr
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}

	return parsedURL.Hostname(), nil
}

// EndpointHost reduces a user supplied endpoint ("host", "host:8182", "wss://host:8182/gremlin")
// to its bare host name.
func EndpointHost(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if NormalizeURL(endpoint) == "" {
		return "", fmt.Errorf("endpoint is empty")
	}

	// Parse before trimming slashes: "http://" must not become "http:".
	host, err := URL2ServiceRobust(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if err := ValidateHost(host); err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return host, nil
}
