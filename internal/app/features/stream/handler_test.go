package stream_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	streamfeature "github.com/dalemusser/studysphere/internal/app/features/stream"
	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.uber.org/zap"
)

type fakeLive int

func (f fakeLive) Active() int { return int(f) }

// readEvent reads one "event:"/"data:" pair from an SSE stream.
func readEvent(t *testing.T, rd *bufio.Reader) (event, data string) {
	t.Helper()
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			t.Fatalf("read sse line: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestServeStream(t *testing.T) {
	feed := watch.NewStream[models.Resource]()
	feed.Publish([]models.Resource{{ID: "a", Title: "Notes"}})

	h := streamfeature.NewHandler(feed, fakeLive(4), zap.NewNop())
	h.SetLiveInterval(time.Hour) // only the initial live_count event

	srv := httptest.NewServer(http.HandlerFunc(h.ServeStream))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content-type = %q", ct)
	}

	rd := bufio.NewReader(resp.Body)

	// Connect sequence: immediate live_count, then the replayed snapshot.
	seen := map[string]string{}
	for i := 0; i < 2; i++ {
		event, data := readEvent(t, rd)
		seen[event] = data
	}
	if seen["live_count"] != `{"count":4}` {
		t.Errorf("live_count = %q", seen["live_count"])
	}
	if !strings.Contains(seen["resources"], `"Notes"`) {
		t.Errorf("resources = %q", seen["resources"])
	}

	// A store change pushes a fresh snapshot.
	feed.Publish([]models.Resource{
		{ID: "a", Title: "Notes"},
		{ID: "b", Title: "Slides"},
	})
	event, data := readEvent(t, rd)
	if event != "resources" || !strings.Contains(data, `"Slides"`) {
		t.Errorf("after publish: event=%q data=%q", event, data)
	}
}

func TestServeStream_ClientDisconnect(t *testing.T) {
	feed := watch.NewStream[models.Resource]()
	feed.Publish([]models.Resource{})

	h := streamfeature.NewHandler(feed, fakeLive(0), zap.NewNop())
	h.SetLiveInterval(time.Hour)

	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeStream(w, r)
		close(done)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, "GET", srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	resp.Body.Close()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}
}
