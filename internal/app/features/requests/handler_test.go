package requests_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	requestsfeature "github.com/dalemusser/studysphere/internal/app/features/requests"
	requeststore "github.com/dalemusser/studysphere/internal/app/store/requests"
	"github.com/dalemusser/studysphere/internal/app/system/status"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/studysphere/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*requestsfeature.Handler, *requeststore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	return requestsfeature.NewHandler(store, zap.NewNop()), store
}

func TestServeCreate(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"title":"Linear Algebra Practice","details":"Eigenvalue drills please"}`
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, httptest.NewRequest("POST", "/api/requests", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.ResourceRequest
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("created request has no id")
	}
	if created.Status != status.Pending {
		t.Errorf("status = %q, want %q", created.Status, status.Pending)
	}
	if created.CreatedAt == 0 {
		t.Error("created_at not set")
	}
}

func TestServeCreate_StripsMarkup(t *testing.T) {
	h, store := newHandler(t)

	body := `{"title":"<script>alert(1)</script>Study Guide","details":"<b>bold</b> claims"}`
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, httptest.NewRequest("POST", "/api/requests", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("requests = %d, want 1", len(list))
	}
	if strings.Contains(list[0].Title, "<") || strings.Contains(list[0].Details, "<") {
		t.Errorf("markup survived sanitizing: %+v", list[0])
	}
}

func TestServeCreate_EmptyTitle(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, httptest.NewRequest("POST", "/api/requests", strings.NewReader(`{"title":"  "}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestServeCreate_BadBody(t *testing.T) {
	h := requestsfeature.NewHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, httptest.NewRequest("POST", "/api/requests", strings.NewReader("{oops")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServeList_NewestFirst(t *testing.T) {
	h, store := newHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := store.Create(ctx, "older", ""); err != nil {
		t.Fatalf("seed request: %v", err)
	}
	time.Sleep(2 * time.Millisecond) // created_at has millisecond precision
	if _, err := store.Create(ctx, "newer", ""); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/api/requests", nil))

	var resp requestsfeature.ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(resp.Requests))
	}
	if resp.Requests[0].Title != "newer" {
		t.Errorf("first request = %q, want newest", resp.Requests[0].Title)
	}
}
