package models

// ResourceRequest is a student-submitted ask for content the catalog is
// missing. Requests carry no requester identity; only an admin can flip the
// status or delete them.
type ResourceRequest struct {
	ID      string `bson:"_id,omitempty" json:"id"`
	Title   string `bson:"title" json:"title"`
	Details string `bson:"details,omitempty" json:"details,omitempty"`

	Status string `bson:"status" json:"status"` // "pending" or "completed"

	// CreatedAt is epoch milliseconds.
	CreatedAt int64 `bson:"created_at" json:"created_at"`
}
