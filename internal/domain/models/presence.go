package models

import "time"

// Presence is one record per distinct anonymous client. The id is the
// client-generated token that browser keeps across sessions; LastSeen is
// assigned server-side at write time so skewed client clocks cannot distort
// the live count.
//
// Records are never deleted; stale ones simply age out of the active window.
type Presence struct {
	ID       string    `bson:"_id" json:"id"`
	LastSeen time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
}
