package models

// Resource is one catalog entry: a link to a PDF or a video, plus the
// counters the feed sorts on.
//
// IDs are store-assigned hex strings, except for the two protected seed
// records which keep the fixed ids "1" and "2" so a fresh deployment is
// never empty. Seed records reject deletion and counter mutation.
type Resource struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Title string `bson:"title" json:"title"`
	// TitleCI and DescriptionCI are lowercase, diacritics-stripped copies
	// used for case-insensitive substring search.
	TitleCI string `bson:"title_ci" json:"-"`

	Description   string `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionCI string `bson:"description_ci,omitempty" json:"-"`

	Type string `bson:"type" json:"type"` // "PDF" or "VIDEO"

	URL          string `bson:"url" json:"url"`
	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`

	Category string `bson:"category" json:"category"`

	// AddedAt is epoch milliseconds, the feed's time sort key.
	AddedAt int64 `bson:"added_at" json:"added_at"`

	Likes    int64 `bson:"likes" json:"likes"`
	Dislikes int64 `bson:"dislikes" json:"dislikes"`
	Views    int64 `bson:"views" json:"views"`

	Pinned bool `bson:"pinned" json:"pinned"`
}

// Protected seed record ids. These two records are upserted at startup and
// are exempt from deletion, votes, view increments, and pin toggles.
const (
	SeedResourceID1 = "1"
	SeedResourceID2 = "2"
)

// IsProtectedResourceID reports whether id names a seed record.
func IsProtectedResourceID(id string) bool {
	return id == SeedResourceID1 || id == SeedResourceID2
}
