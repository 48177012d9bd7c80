// internal/domain/models/resourcetypes.go
package models

// Canonical resource type identifiers.
//
// These values are stored in the database in the Resource.Type field. The
// catalog only carries links to documents and videos, so the set is small;
// any new type must be added here to be considered valid.
const (
	ResourceTypePDF   = "PDF"
	ResourceTypeVideo = "VIDEO"
)

// ResourceTypes is the full set of allowed resource type identifiers.
var ResourceTypes = []string{
	ResourceTypePDF,
	ResourceTypeVideo,
}

// IsValidResourceType reports whether t is one of the allowed identifiers.
func IsValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if t == v {
			return true
		}
	}
	return false
}
