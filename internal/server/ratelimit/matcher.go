package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never limited
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/sections/" matches "/sections/{id}/polish").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special cases: health checks and the long-lived event stream are unlimited
	if method == "GET" && (path == "/health" || path == "/events") {
		u := unlimited
		return &u
	}

	// Try exact match first
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
