// Package client is the Go client for the StudySphere API. It carries the
// anonymous client identity token across requests, keeps presence fresh with
// a heartbeat emitter, and can subscribe to the server's event stream for
// live catalog snapshots.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dalemusser/studysphere/internal/app/system/clientid"
	"github.com/dalemusser/studysphere/internal/app/system/liveness"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client talks to one StudySphere server.
type Client struct {
	baseURL  *url.URL
	client   *http.Client
	identity clientid.Provider
	log      *zap.Logger

	emitter *liveness.Emitter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client. The cookie jar is
// still installed on it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithIdentity sets the client identity provider. Without one the identity
// is memory-only and lost on process exit.
func WithIdentity(p clientid.Provider) Option {
	return func(c *Client) { c.identity = p }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s), got %q", baseURL)
	}

	c := &Client{
		baseURL:  u,
		client:   &http.Client{Timeout: defaultTimeout},
		identity: NewMemoryIdentity(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.client.Jar = jar
	}

	// Seed the identity cookie so the first heartbeat already carries the
	// durable token instead of minting a server-side one.
	token, err := c.identity.GetOrCreate()
	if err != nil {
		return nil, fmt.Errorf("client identity: %w", err)
	}
	c.client.Jar.SetCookies(u, []*http.Cookie{{Name: clientid.CookieName, Value: token}})

	return c, nil
}

// Resources fetches the filtered, sorted catalog feed.
func (c *Client) Resources(ctx context.Context, q Query) (FeedPage, error) {
	path := "/api/resources?" + q.values().Encode()
	var page FeedPage
	if err := c.getJSON(ctx, path, &page); err != nil {
		return FeedPage{}, err
	}
	return page, nil
}

// Vote casts or retracts a like/dislike on a resource.
func (c *Client) Vote(ctx context.Context, id, kind string, retract bool) error {
	body := map[string]any{"kind": kind, "retract": retract}
	return c.postJSON(ctx, "/api/resources/"+id+"/vote", body, nil)
}

// View records one view of a resource.
func (c *Client) View(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/api/resources/"+id+"/view", nil, nil)
}

// Requests fetches the resource request queue, newest first.
func (c *Client) Requests(ctx context.Context) ([]ResourceRequest, error) {
	var resp struct {
		Requests []ResourceRequest `json:"requests"`
	}
	if err := c.getJSON(ctx, "/api/requests", &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// SubmitRequest files a new resource request.
func (c *Client) SubmitRequest(ctx context.Context, title, details string) (ResourceRequest, error) {
	body := map[string]string{"title": title, "details": details}
	var created ResourceRequest
	if err := c.postJSON(ctx, "/api/requests", body, &created); err != nil {
		return ResourceRequest{}, err
	}
	return created, nil
}

// LiveCount fetches the current live visitor estimate.
func (c *Client) LiveCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, "/api/live-count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Heartbeat writes one presence beat. Most callers use StartPresence
// instead and let the emitter schedule beats.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.postJSON(ctx, "/api/heartbeat", nil, nil)
}

// StartPresence launches the heartbeat emitter: an immediate beat, then one
// per interval until StopPresence (or ctx cancellation).
func (c *Client) StartPresence(ctx context.Context) {
	if c.emitter != nil {
		return
	}
	c.emitter = liveness.NewEmitter(c.Heartbeat, c.log.Named("heartbeat"))
	c.emitter.Start(ctx)
}

// StopPresence stops the heartbeat emitter.
func (c *Client) StopPresence() {
	if c.emitter != nil {
		c.emitter.Stop()
		c.emitter = nil
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String()+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
