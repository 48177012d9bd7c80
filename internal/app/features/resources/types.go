// internal/app/features/resources/types.go
package resources

import "github.com/dalemusser/studysphere/internal/domain/models"

// ListResponse is the feed payload. Loading distinguishes "no snapshot yet"
// from a genuinely empty result set.
type ListResponse struct {
	Loading    bool              `json:"loading"`
	Resources  []models.Resource `json:"resources"`
	Categories []string          `json:"categories"`
	LiveCount  int               `json:"live_count"`
}

// VoteRequest is the body for POST /api/resources/{id}/vote. Retract undoes
// an earlier vote of the same kind by this client.
type VoteRequest struct {
	Kind    string `json:"kind"` // "like" or "dislike"
	Retract bool   `json:"retract,omitempty"`
}
