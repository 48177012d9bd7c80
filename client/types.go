package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dalemusser/studysphere/internal/domain/models"
)

// Resource and ResourceRequest are the catalog records exactly as the server
// returns them, re-exported here so importers of this package never have to
// name an internal package.
type (
	Resource        = models.Resource
	ResourceRequest = models.ResourceRequest
)

// Query selects and orders the catalog feed.
type Query struct {
	Search   string
	Category string
	Sort     string // newest, oldest, popular, views
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// FeedPage is one rendering of the catalog feed.
type FeedPage struct {
	Loading    bool       `json:"loading"`
	Resources  []Resource `json:"resources"`
	Categories []string   `json:"categories"`
	LiveCount  int        `json:"live_count"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}
