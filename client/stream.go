package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/studysphere/internal/app/system/watch"
	"go.uber.org/zap"
)

// FeedStream and CountStream name the subscription's snapshot hubs so
// callers can hold and pass them without naming an internal package.
type (
	FeedStream  = watch.Stream[Resource]
	CountStream = watch.Stream[int]
)

// Subscription is a live view of the server's catalog, fed by the event
// stream. Feed and Live follow the server's push loop until the context
// passed to Subscribe is canceled.
type Subscription struct {
	// Feed replays the latest catalog snapshot on subscribe and pushes
	// every later one.
	Feed *FeedStream
	// Live replays the latest live-count value the same way.
	Live *CountStream
}

// Subscribe connects to the server's event stream. The returned Subscription
// stays live until ctx is canceled; connection errors after the initial
// handshake are logged and the goroutine exits, leaving the last snapshot in
// place.
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/api/stream", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream never ends, so it must not ride the default timeout.
	hc := &http.Client{Jar: c.client.Jar, Transport: c.client.Transport}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, newAPIError(resp)
	}

	sub := &Subscription{
		Feed: watch.NewStream[Resource](),
		Live: watch.NewStream[int](),
	}

	go func() {
		defer resp.Body.Close()

		rd := bufio.NewReader(resp.Body)
		var event, data string
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				if ctx.Err() == nil {
					c.log.Warn("event stream closed", zap.Error(err))
				}
				return
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				if event != "" {
					c.dispatch(sub, event, data)
				}
				event, data = "", ""
			}
		}
	}()

	return sub, nil
}

func (c *Client) dispatch(sub *Subscription, event, data string) {
	switch event {
	case "resources":
		var snapshot []Resource
		if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
			c.log.Warn("bad resources event", zap.Error(err))
			return
		}
		sub.Feed.Publish(snapshot)
	case "live_count":
		var payload struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			c.log.Warn("bad live_count event", zap.Error(err))
			return
		}
		sub.Live.Publish([]int{payload.Count})
	}
}
