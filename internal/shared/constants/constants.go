package constants

import "time"

const (
	// MaxBodyBytes caps how much of a fetched page is read for content inspection.
	MaxBodyBytes = 512 * 1024
	// MaxRequestBodyBytes caps incoming API request bodies.
	MaxRequestBodyBytes = 1 << 20
)

const (
	// DefaultFetchTimeout bounds the page-fetch probe; it governs overall scan latency.
	DefaultFetchTimeout = 12 * time.Second
	// DefaultWhoisTimeout bounds the WHOIS creation-date probe.
	DefaultWhoisTimeout = 5 * time.Second
	// DefaultMXTimeout bounds MX record resolution.
	DefaultMXTimeout = 5 * time.Second
	// DefaultUpstreamTimeout bounds calls to third-party breach and assistant APIs.
	DefaultUpstreamTimeout = 15 * time.Second
)
