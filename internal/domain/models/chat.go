package models

// Chat transcript roles, matching what the completion backend expects.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one turn of an assistant conversation. Transcripts live in
// the browser session only and are never written to the store; the client
// replays its history with each request.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "model"
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"` // epoch millis, informational
}
