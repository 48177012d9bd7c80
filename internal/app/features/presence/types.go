// internal/app/features/presence/types.go
package presence

// HeartbeatResponse acknowledges a presence beat.
type HeartbeatResponse struct {
	OK bool `json:"ok"`
}

// LiveCountResponse carries the current live visitor estimate.
type LiveCountResponse struct {
	Count int `json:"count"`
}
