// internal/app/features/requests/types.go
package requests

import "github.com/dalemusser/studysphere/internal/domain/models"

// CreateRequest is the POST /api/requests body.
type CreateRequest struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// ListResponse wraps the request queue, newest first.
type ListResponse struct {
	Requests []models.ResourceRequest `json:"requests"`
}
