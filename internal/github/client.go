package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Voice-Wise/release/internal/config"
)

const (
	// defaultBaseURL is the public GitHub REST API origin.
	defaultBaseURL = "https://api.github.com"

	// apiVersion pins the REST API revision for all requests.
	apiVersion = "2022-11-28"

	// userAgent identifies this tool to the API.
	userAgent = "voicewise-updater-manifest"
)

var (
	// ErrReleaseNotFound is returned when no release exists for the tag.
	ErrReleaseNotFound = errors.New("release not found")
	// ErrMissingPublishDate is returned when a release carries neither
	// a publish nor a creation timestamp.
	ErrMissingPublishDate = errors.New("release missing published_at/created_at")
	// ErrMissingAssets is returned when the release payload has no assets field.
	ErrMissingAssets = errors.New("release assets payload invalid")
	// errBadHTTPStatus is returned on any other non-2xx response.
	errBadHTTPStatus = errors.New("unexpected http status")
	// errRateLimited is returned when the API rejects the request for quota.
	errRateLimited = errors.New("api rate limit exceeded, set a token for higher limits")
)

// Client talks to the release-hosting REST API.
// The zero value is not usable; construct it with NewClient.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API origin. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout bounds each outbound HTTP call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient returns a Client authenticating with the provided token.
// An empty token means unauthenticated requests.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: config.DefaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ReleaseByTag fetches release metadata for owner/repo at the provided tag.
// It validates the contract the generator depends on: a usable publish date
// and a present assets list.
func (c *Client) ReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, owner, repo, tag)

	body, err := c.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var release Release
	if err = json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parse release payload: %w", err)
	}

	if release.PubDate() == "" {
		return nil, ErrMissingPublishDate
	}

	if release.Assets == nil {
		return nil, ErrMissingAssets
	}

	return &release, nil
}

// DownloadAsset fetches the raw bytes of a release asset through the API
// endpoint, which honors the bearer token for private repositories.
func (c *Client) DownloadAsset(ctx context.Context, asset *Asset) ([]byte, error) {
	body, err := c.get(ctx, asset.URL, "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("download asset %s: %w", asset.Name, err)
	}

	return body, nil
}

// get issues one GET with the standard headers and reads the full body.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrReleaseNotFound)
	case response.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", url, errRateLimited)
	case response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("%s, %s: %w", url, response.Status, errBadHTTPStatus)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
