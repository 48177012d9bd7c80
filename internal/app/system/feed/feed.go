// internal/app/system/feed/feed.go
package feed

import (
	"sort"
	"strings"

	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Sort modes for the resource feed. Pinned-first is not a mode: pinned
// resources always sort ahead of unpinned ones, and the chosen mode only
// orders records within each partition.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortViews   = "views"
)

// AllCategories is the wildcard category value: no category filtering.
const AllCategories = "All"

// Query is one user's view of the feed: a free-text search term, a category
// ("All" or empty disables the filter), and a sort mode.
type Query struct {
	Search   string
	Category string
	Sort     string
}

// Render filters and orders resources for display. It is a pure function of
// its inputs: the input slice is not mutated, and ties within the sort key
// keep their input (store) order.
//
// A resource is kept when the search term is a case-insensitive substring of
// its title or description, and its category matches the query's category.
func Render(resources []models.Resource, q Query) []models.Resource {
	needle := text.Fold(strings.TrimSpace(q.Search))

	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if needle != "" && !matches(r, needle) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && r.Category != q.Category {
			continue
		}
		out = append(out, r)
	}

	less := lessFor(q.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		return less(a, b)
	})
	return out
}

// matches reports whether needle (already folded) appears in the resource's
// title or description. The folded *_ci copies are preferred when present;
// records that never passed through the store (seed fallback data, tests)
// fall back to folding on the fly.
func matches(r models.Resource, needle string) bool {
	title := r.TitleCI
	if title == "" {
		title = text.Fold(r.Title)
	}
	desc := r.DescriptionCI
	if desc == "" {
		desc = text.Fold(r.Description)
	}
	return strings.Contains(title, needle) || strings.Contains(desc, needle)
}

// lessFor returns the within-partition ordering for a sort mode. Unknown
// modes fall back to newest.
func lessFor(mode string) func(a, b models.Resource) bool {
	switch mode {
	case SortOldest:
		return func(a, b models.Resource) bool { return a.AddedAt < b.AddedAt }
	case SortPopular:
		return func(a, b models.Resource) bool { return a.Likes > b.Likes }
	case SortViews:
		return func(a, b models.Resource) bool { return a.Views > b.Views }
	default: // SortNewest
		return func(a, b models.Resource) bool { return a.AddedAt > b.AddedAt }
	}
}

// Categories returns the selectable category list for a resource set:
// the literal "All" followed by each distinct category in first-occurrence
// order. The order is a function of the input order, never of map iteration.
func Categories(resources []models.Resource) []string {
	out := []string{AllCategories}
	seen := make(map[string]bool, len(resources))
	for _, r := range resources {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}
