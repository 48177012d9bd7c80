// internal/app/store/resources/seed.go
package resourcestore

import (
	"time"

	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Seed returns the two protected demo records. They are upserted at startup
// and also serve as the fallback snapshot when the store cannot be read, so
// the catalog is never empty-and-broken-looking on first load.
func Seed() []models.Resource {
	now := time.Now().UTC().UnixMilli()

	out := []models.Resource{
		{
			ID:           models.SeedResourceID1,
			Title:        "Calculus Cheat Sheet",
			Description:  "A comprehensive quick reference guide for limits, derivatives, and integrals.",
			Type:         models.ResourceTypePDF,
			URL:          "https://pdfobject.com/pdf/sample.pdf",
			ThumbnailURL: "https://upload.wikimedia.org/wikipedia/commons/c/c3/De_Agnesi_instituzioni_analitiche.jpg",
			Category:     "Mathematics",
			AddedAt:      now,
			Likes:        12,
			Dislikes:     1,
			Views:        120,
			Pinned:       true,
		},
		{
			ID:          models.SeedResourceID2,
			Title:       "The French Revolution Explained",
			Description: "Deep dive into the causes and effects of the revolution.",
			Type:        models.ResourceTypeVideo,
			URL:         "https://www.youtube.com/watch?v=VEZqarUnVpo",
			Category:    "History",
			AddedAt:     now - 100_000,
			Likes:       45,
			Dislikes:    2,
			Views:       340,
		},
	}
	for i := range out {
		out[i].TitleCI = text.Fold(out[i].Title)
		out[i].DescriptionCI = text.Fold(out[i].Description)
	}
	return out
}
