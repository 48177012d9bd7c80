package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/studysphere/client"
	"github.com/dalemusser/studysphere/internal/app/system/clientid"
)

// fakeServer mimics the API surface the client talks to.
type fakeServer struct {
	mu         sync.Mutex
	beats      []string // client tokens seen on /api/heartbeat
	votes      []string
	lastSearch string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/resources", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastSearch = r.URL.Query().Get("search")
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"loading":false,"resources":[{"id":"a","title":"Notes"}],"categories":["All"],"live_count":2}`)
	})

	mux.HandleFunc("POST /api/resources/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.votes = append(f.votes, r.PathValue("id"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/requests", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"r1","title":"Stats sheet","status":"pending"}`)
	})

	mux.HandleFunc("POST /api/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(clientid.CookieName); err == nil {
			token = c.Value
		}
		f.mu.Lock()
		f.beats = append(f.beats, token)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true}`)
	})

	mux.HandleFunc("GET /api/live-count", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":5}`)
	})

	mux.HandleFunc("GET /api/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "event: live_count\ndata: {\"count\":9}\n\n")
		fmt.Fprint(w, "event: resources\ndata: [{\"id\":\"a\",\"title\":\"Notes\"}]\n\n")
		flusher.Flush()
		<-r.Context().Done()
	})

	return mux
}

func newClient(t *testing.T, srv *httptest.Server, opts ...client.Option) *client.Client {
	t.Helper()
	c, err := client.New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}

func TestResources(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := newClient(t, srv)
	page, err := c.Resources(context.Background(), client.Query{Search: "calculus"})
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	if page.Loading || len(page.Resources) != 1 || page.LiveCount != 2 {
		t.Errorf("page = %+v", page)
	}
	if fake.lastSearch != "calculus" {
		t.Errorf("search param = %q", fake.lastSearch)
	}
}

func TestSubmitRequestAndLiveCount(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	c := newClient(t, srv)

	created, err := c.SubmitRequest(context.Background(), "Stats sheet", "")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if created.ID != "r1" || created.Status != "pending" {
		t.Errorf("created = %+v", created)
	}

	n, err := c.LiveCount(context.Background())
	if err != nil {
		t.Fatalf("LiveCount: %v", err)
	}
	if n != 5 {
		t.Errorf("live count = %d, want 5", n)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"error":"sample records cannot be modified"}`)
	}))
	defer srv.Close()

	c := newClient(t, srv)
	err := c.Vote(context.Background(), "1", "like", false)
	apiErr, ok := err.(*client.APIError)
	if !ok {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message == "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestPresence_CarriesStableIdentity(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	idFile := filepath.Join(t.TempDir(), "identity")
	c := newClient(t, srv, client.WithIdentity(client.NewFileIdentity(idFile)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartPresence(ctx) // immediate beat
	c.StopPresence()

	// A second client with the same identity file presents the same token.
	c2 := newClient(t, srv, client.WithIdentity(client.NewFileIdentity(idFile)))
	if err := c2.Heartbeat(context.Background()); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.beats) != 2 {
		t.Fatalf("beats = %d, want 2", len(fake.beats))
	}
	if fake.beats[0] == "" || fake.beats[0] != fake.beats[1] {
		t.Errorf("tokens differ across runs: %q vs %q", fake.beats[0], fake.beats[1])
	}
}

func TestSubscribe(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	c := newClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := c.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	feedCh, cancelFeed := sub.Feed.Subscribe()
	defer cancelFeed()
	liveCh, cancelLive := sub.Live.Subscribe()
	defer cancelLive()

	// Everything the subscription yields is nameable via this package alone.
	var snapshot []client.Resource
	select {
	case snapshot = <-feedCh:
	case <-time.After(5 * time.Second):
		t.Fatal("no resources event")
	}
	if len(snapshot) != 1 || snapshot[0].ID != "a" {
		t.Errorf("snapshot = %+v", snapshot)
	}

	select {
	case counts := <-liveCh:
		if len(counts) != 1 || counts[0] != 9 {
			t.Errorf("live counts = %v", counts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no live_count event")
	}
}
