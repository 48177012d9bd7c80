// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around store calls in HTTP
// handlers. Centralizing them keeps handler I/O budgets consistent and easy
// to adjust.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes (vote, view, heartbeat)
//   - Medium: list queries and creates
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and creates.
func Medium() time.Duration { return medium }
