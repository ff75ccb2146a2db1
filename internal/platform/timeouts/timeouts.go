// Package timeouts defines shared timeout constants used across the
// binaries. Centralizing these values prevents drift between entry points
// and makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ExternalRequest caps a single call to an outside HTTP API (the
// generative-text service, the Archivist journal). Generation responses
// can take tens of seconds.
const ExternalRequest = 60 * time.Second
