package presencestore_test

import (
	"testing"
	"time"

	presencestore "github.com/dalemusser/studysphere/internal/app/store/presence"
	"github.com/dalemusser/studysphere/internal/testutil"
)

func TestStore_Heartbeat_UpsertsOneRecordPerClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := presencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Heartbeat(ctx, "client-a"); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if err := store.Heartbeat(ctx, "client-a"); err != nil {
		t.Fatalf("second Heartbeat: %v", err)
	}
	if err := store.Heartbeat(ctx, "client-b"); err != nil {
		t.Fatalf("Heartbeat for second client: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(All) = %d, want 2 (one record per client)", len(all))
	}
}

func TestStore_Heartbeat_ServerAssignsLastSeen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := presencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Minute)

	if err := store.Heartbeat(ctx, "client-a"); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(All) = %d, want 1", len(all))
	}
	if all[0].LastSeen.IsZero() {
		t.Fatal("last_seen not assigned by the server")
	}
	if all[0].LastSeen.Before(before) {
		t.Fatalf("last_seen %v is implausibly old", all[0].LastSeen)
	}
}

func TestStore_Heartbeat_RefreshesLastSeen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := presencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Heartbeat(ctx, "client-a"); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	first, _ := store.All(ctx)

	time.Sleep(20 * time.Millisecond)
	if err := store.Heartbeat(ctx, "client-a"); err != nil {
		t.Fatalf("second Heartbeat: %v", err)
	}
	second, _ := store.All(ctx)

	if !second[0].LastSeen.After(first[0].LastSeen) {
		t.Fatalf("last_seen not refreshed: %v -> %v", first[0].LastSeen, second[0].LastSeen)
	}
}
