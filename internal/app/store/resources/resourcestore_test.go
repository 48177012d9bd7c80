package resourcestore_test

import (
	"errors"
	"testing"

	resourcestore "github.com/dalemusser/studysphere/internal/app/store/resources"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/studysphere/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := models.Resource{
		Title:       "Test Resource",
		Description: "A Description",
		Type:        models.ResourceTypePDF,
		URL:         "https://example.com/doc.pdf",
		Category:    "Mathematics",
		// Counters set by a hostile caller must be zeroed on create.
		Likes: 99,
		Views: 99,
	}

	created, err := store.Create(ctx, r)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if models.IsProtectedResourceID(created.ID) {
		t.Error("assigned a protected id to a new record")
	}
	if created.TitleCI == "" || created.DescriptionCI == "" {
		t.Error("expected folded search fields to be set")
	}
	if created.Likes != 0 || created.Dislikes != 0 || created.Views != 0 {
		t.Errorf("counters not zeroed: %+v", created)
	}
	if created.Pinned {
		t.Error("new resources must start unpinned")
	}
	if created.AddedAt == 0 {
		t.Error("expected AddedAt to be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := models.Resource{
		Title:    "Valid",
		Type:     models.ResourceTypeVideo,
		URL:      "https://example.com/v",
		Category: "History",
	}

	tests := []struct {
		name string
		mut  func(*models.Resource)
	}{
		{"blank title", func(r *models.Resource) { r.Title = "  " }},
		{"blank category", func(r *models.Resource) { r.Category = "" }},
		{"bad type", func(r *models.Resource) { r.Type = "SLIDES" }},
		{"relative url", func(r *models.Resource) { r.URL = "/doc.pdf" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			tc.mut(&r)
			_, err := store.Create(ctx, r)
			if !errors.Is(err, resourcestore.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestStore_Vote_ToggleReturnsToOriginal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fx.CreateResource(ctx, "Votable", func(r *models.Resource) { r.Likes = 3 })

	if err := store.Vote(ctx, r.ID, resourcestore.VoteLike, false); err != nil {
		t.Fatalf("Vote like: %v", err)
	}
	if err := store.Vote(ctx, r.ID, resourcestore.VoteLike, true); err != nil {
		t.Fatalf("Vote retract: %v", err)
	}

	got, err := store.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Likes != 3 {
		t.Errorf("likes after like+retract = %d, want 3 (net zero)", got.Likes)
	}
}

func TestStore_Vote_RetractNeverGoesNegative(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fx.CreateResource(ctx, "Zero Likes", nil)

	if err := store.Vote(ctx, r.ID, resourcestore.VoteDislike, true); err != nil {
		t.Fatalf("retract at zero: %v", err)
	}
	got, err := store.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Dislikes != 0 {
		t.Errorf("dislikes = %d, want 0", got.Dislikes)
	}
}

func TestStore_Vote_BadKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fx.CreateResource(ctx, "Votable", nil)
	if err := store.Vote(ctx, r.ID, "meh", false); !errors.Is(err, resourcestore.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestStore_ProtectedRecordsRejectMutation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureSeed(ctx); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}

	for _, id := range []string{models.SeedResourceID1, models.SeedResourceID2} {
		if err := store.Delete(ctx, id); !errors.Is(err, resourcestore.ErrProtectedRecord) {
			t.Errorf("Delete(%s) err = %v, want ErrProtectedRecord", id, err)
		}
		if err := store.Vote(ctx, id, resourcestore.VoteLike, false); !errors.Is(err, resourcestore.ErrProtectedRecord) {
			t.Errorf("Vote(%s) err = %v, want ErrProtectedRecord", id, err)
		}
		if err := store.IncrementView(ctx, id); !errors.Is(err, resourcestore.ErrProtectedRecord) {
			t.Errorf("IncrementView(%s) err = %v, want ErrProtectedRecord", id, err)
		}
		if err := store.SetPinned(ctx, id, true); !errors.Is(err, resourcestore.ErrProtectedRecord) {
			t.Errorf("SetPinned(%s) err = %v, want ErrProtectedRecord", id, err)
		}
	}

	// And nothing changed.
	seed, err := store.GetByID(ctx, models.SeedResourceID1)
	if err != nil {
		t.Fatalf("GetByID(seed): %v", err)
	}
	if seed.Likes != 12 || seed.Views != 120 {
		t.Errorf("seed counters mutated: %+v", seed)
	}
}

func TestStore_EnsureSeed_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureSeed(ctx); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}
	if err := store.EnsureSeed(ctx); err != nil {
		t.Fatalf("EnsureSeed (second): %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List) = %d, want 2 seed records", len(list))
	}
}

func TestStore_DeleteAndNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fx.CreateResource(ctx, "Doomed", nil)
	if err := store.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, r.ID); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
	if _, err := store.GetByID(ctx, r.ID); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Fatalf("GetByID after delete err = %v, want ErrNotFound", err)
	}
}

func TestStore_SetPinned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fx.CreateResource(ctx, "Pinnable", nil)

	if err := store.SetPinned(ctx, r.ID, true); err != nil {
		t.Fatalf("SetPinned: %v", err)
	}
	got, _ := store.GetByID(ctx, r.ID)
	if !got.Pinned {
		t.Error("resource not pinned")
	}

	if err := store.SetPinned(ctx, r.ID, false); err != nil {
		t.Fatalf("SetPinned(false): %v", err)
	}
	got, _ = store.GetByID(ctx, r.ID)
	if got.Pinned {
		t.Error("resource still pinned")
	}
}
