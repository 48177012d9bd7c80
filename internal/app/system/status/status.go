// internal/app/system/status/status.go
package status

// Resource request lifecycle values, stored in ResourceRequest.Status.
const (
	Pending   = "pending"
	Completed = "completed"
)

// IsValid reports whether s is a known request status.
func IsValid(s string) bool {
	return s == Pending || s == Completed
}
