// Package supabase implements the service's storage contracts against a
// Supabase project: descriptor and achievement tables through PostgREST,
// and user administration through the GoTrue admin API. All calls are
// made with the service-role key.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
)

const (
	restPath      = "/rest/v1/"
	authAdminPath = "/auth/v1/admin/"

	// PostgREST Prefer header values.
	preferRepresentation   = "return=representation"
	preferIgnoreDuplicates = "resolution=ignore-duplicates,return=representation"
)

// Client is a thin REST client for a Supabase project.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient builds a Client from the application config.
func NewClient(cfg config.SupabaseConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	prefer string
	body   interface{}
}

// do executes one request and decodes the JSON response into out (when
// out is non-nil and the response has a body). Any non-2xx status maps to
// a domain UpstreamError carrying a snippet of the response body.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var bodyReader io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return domain.NewInternalError("failed to encode request body", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	fullURL := c.baseURL + req.path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, bodyReader)
	if err != nil {
		return domain.NewInternalError("failed to build request", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.serviceKey)
	httpReq.Header.Set("apikey", c.serviceKey)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.NewUpstreamError(fmt.Sprintf("%s %s", req.method, req.path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.NewUpstreamError(fmt.Sprintf("%s %s: reading response", req.method, req.path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewUpstreamError(
			fmt.Sprintf("%s %s: status %d: %s", req.method, req.path, resp.StatusCode, truncate(string(respBody), 300)),
			nil,
		)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return domain.NewUpstreamError(fmt.Sprintf("%s %s: malformed response", req.method, req.path), err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
