// internal/app/system/liveness/liveness.go
package liveness

import (
	"time"

	"github.com/dalemusser/studysphere/internal/domain/models"
)

// ActiveWindow is how recently a client must have heartbeated to count as
// present. Heartbeats arrive every minute, so two minutes tolerates one
// dropped beat before a client falls out of the count.
const ActiveWindow = 2 * time.Minute

// HeartbeatInterval is how often a running client refreshes its presence
// record.
const HeartbeatInterval = time.Minute

// CountActive returns how many presence records were seen within
// ActiveWindow of now. Records with a zero LastSeen (written but not yet
// server-acknowledged) are excluded, not errors.
//
// This is a full scan of every record ever written; stale client ids are
// never cleaned up, so cost grows with total historical visitors. That trade
// is deliberate for small deployments: the store does zero aggregation work.
func CountActive(records []models.Presence, now time.Time) int {
	n := 0
	for _, r := range records {
		if r.LastSeen.IsZero() {
			continue
		}
		if now.Sub(r.LastSeen) < ActiveWindow {
			n++
		}
	}
	return n
}
