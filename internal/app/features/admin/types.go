// internal/app/features/admin/types.go
package admin

// LoginRequest is the POST /admin/login body.
type LoginRequest struct {
	Key string `json:"key"`
}

// SessionResponse reports whether the caller holds an admin session.
type SessionResponse struct {
	Admin bool `json:"admin"`
}

// CreateResourceRequest is the POST /admin/resources body.
type CreateResourceRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category"`
}

// PinRequest is the POST /admin/resources/{id}/pin body.
type PinRequest struct {
	Pinned bool `json:"pinned"`
}

// StatusRequest is the POST /admin/requests/{id}/status body.
type StatusRequest struct {
	Status string `json:"status"`
}
