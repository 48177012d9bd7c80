// internal/app/features/assistant/types.go
package assistant

// ChatTurn is one prior message in the client-held transcript.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the POST /api/assistant/chat body.
type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

// ChatResponse carries the model reply. Degraded marks a placeholder answer
// produced because the backend was unavailable.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Degraded bool   `json:"degraded,omitempty"`
}

// VisionRequest is the POST /api/assistant/vision body.
type VisionRequest struct {
	Image    string `json:"image"` // base64, no data: prefix
	MimeType string `json:"mime_type"`
	Prompt   string `json:"prompt"`
}

// VisionResponse carries the image analysis.
type VisionResponse struct {
	Analysis string `json:"analysis"`
	Degraded bool   `json:"degraded,omitempty"`
}
