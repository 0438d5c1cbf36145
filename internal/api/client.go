package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/msalah0e/glossview/internal/model"
)

const (
	termsPath  = "/api/terms"
	graphPath  = "/api/graph"
	healthPath = "/health"
)

// LoadError is returned when a resource could not be loaded. It does not
// distinguish transport failures from server errors; Status is zero when
// no response was received.
type LoadError struct {
	Resource string
	Status   int
	Err      error
}

func (e *LoadError) Error() string {
	return "Failed to load " + e.Resource
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Client fetches glossary data from the backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

// New creates a client for the backend at baseURL. Requests carry no
// timeout and are never retried.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Log:        zap.NewNop(),
	}
}

// WithLogger returns c with logger attached.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.Log = logger
	}
	return c
}

// LoadTerms fetches the term list.
func (c *Client) LoadTerms(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	if err := c.getJSON(ctx, "terms", termsPath, &terms); err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []model.Term{}
	}
	return terms, nil
}

// LoadGraph fetches the graph document.
func (c *Client) LoadGraph(ctx context.Context) (*model.GraphDocument, error) {
	var doc model.GraphDocument
	if err := c.getJSON(ctx, "graph", graphPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadTerm fetches a single term by id.
func (c *Client) LoadTerm(ctx context.Context, id string) (*model.Term, error) {
	var term model.Term
	if err := c.getJSON(ctx, "term "+id, termsPath+"/"+url.PathEscape(id), &term); err != nil {
		return nil, err
	}
	return &term, nil
}

// Health checks that the backend answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "health", healthPath, &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return &LoadError{Resource: "health", Err: fmt.Errorf("status %q", body.Status)}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, resource, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return &LoadError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Debug("request failed", zap.String("path", path), zap.Error(err))
		return &LoadError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Debug("unexpected status", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &LoadError{
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("GET %s returned %d", path, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &LoadError{Resource: resource, Status: resp.StatusCode, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	c.Log.Debug("loaded", zap.String("path", path))
	return nil
}
