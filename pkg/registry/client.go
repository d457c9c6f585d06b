// Package registry implements the Modrinth v2 API client used to resolve
// plugin projects, versions, and reverse hash lookups.
package registry

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HashAlgorithm is the digest the registry's reverse file lookup is keyed by.
// It must match what internal/identity computes for local artifacts.
const HashAlgorithm = "sha512"

// ErrNotFound indicates the requested project does not exist in the registry.
var ErrNotFound = errors.New("project not found")

// StatusError indicates the registry answered with an unexpected HTTP status.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry %s returned status %d", e.Operation, e.StatusCode)
}

// Client is the registry surface the reconciliation engine and the CLI
// consume. Implementations must be safe for concurrent use.
type Client interface {
	// Search returns up to limit server-ranked hits for query.
	Search(ctx context.Context, query string, limit int) ([]ProjectSummary, error)
	// GetProject resolves a project by ID or slug. Missing projects return
	// ErrNotFound, not a nil record.
	GetProject(ctx context.Context, idOrSlug string) (*Project, error)
	// GetVersions lists versions compatible with the given loaders,
	// most recent first per the registry's ordering contract.
	GetVersions(ctx context.Context, projectID string, loaders []string) ([]Version, error)
	// GetVersionsByHash bulk-resolves local content hashes to the versions
	// they belong to. Unknown hashes are omitted from the result.
	GetVersionsByHash(ctx context.Context, hashes []string) (map[string]Version, error)
}

// Options configures a ModrinthClient. All shared client state lives here;
// there is no process-wide default.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DefaultOptions returns production settings for the public Modrinth API.
// Callers normally override UserAgent with the stamped binary version.
func DefaultOptions() Options {
	return Options{
		BaseURL:   "https://api.modrinth.com/v2",
		UserAgent: "craftpkg",
		Timeout:   30 * time.Second,
	}
}

// ModrinthClient talks to the Modrinth v2 HTTP API.
type ModrinthClient struct {
	opts    Options
	fetcher HTTPFetcher
}

// NewModrinthClient creates a client with real HTTP for production use.
func NewModrinthClient(opts Options) *ModrinthClient {
	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
	return NewModrinthClientWithFetcher(opts, NewRealHTTPFetcher(client))
}

// NewModrinthClientWithFetcher creates a client with injectable HTTP for testing.
func NewModrinthClientWithFetcher(opts Options, fetcher HTTPFetcher) *ModrinthClient {
	return &ModrinthClient{opts: opts, fetcher: fetcher}
}

func (c *ModrinthClient) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	return c.fetcher.Do(req)
}

func (c *ModrinthClient) Search(ctx context.Context, query string, limit int) ([]ProjectSummary, error) {
	// The facets pin the search to server plugins; everything else on
	// Modrinth (mods, resource packs) is out of scope for this tool.
	facets := `[["project_type:plugin"],["categories:spigot","categories:paper","categories:purpur","categories:bukkit"]]`

	params := url.Values{}
	params.Set("query", query)
	params.Set("facets", facets)
	params.Set("limit", fmt.Sprintf("%d", limit))

	resp, err := c.get(ctx, fmt.Sprintf("%s/search?%s", c.opts.BaseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to search registry: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Operation: "search", StatusCode: resp.StatusCode}
	}

	var result struct {
		Hits []ProjectSummary `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return result.Hits, nil
}

func (c *ModrinthClient) GetProject(ctx context.Context, idOrSlug string) (*Project, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/project/%s", c.opts.BaseURL, url.PathEscape(idOrSlug)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", idOrSlug, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("project %s: %w", idOrSlug, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Operation: "project", StatusCode: resp.StatusCode}
	}

	var project Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", idOrSlug, err)
	}
	return &project, nil
}

func (c *ModrinthClient) GetVersions(ctx context.Context, projectID string, loaders []string) ([]Version, error) {
	loadersJSON, err := json.Marshal(loaders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode loader filter: %w", err)
	}

	params := url.Values{}
	params.Set("loaders", string(loadersJSON))

	resp, err := c.get(ctx, fmt.Sprintf("%s/project/%s/version?%s", c.opts.BaseURL, url.PathEscape(projectID), params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions for %s: %w", projectID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Operation: "versions", StatusCode: resp.StatusCode}
	}

	var versions []Version
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return nil, fmt.Errorf("failed to decode versions for %s: %w", projectID, err)
	}
	return versions, nil
}

func (c *ModrinthClient) GetVersionsByHash(ctx context.Context, hashes []string) (map[string]Version, error) {
	payload, err := json.Marshal(struct {
		Hashes    []string `json:"hashes"`
		Algorithm string   `json:"algorithm"`
	}{Hashes: hashes, Algorithm: HashAlgorithm})
	if err != nil {
		return nil, fmt.Errorf("failed to encode hash lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/version_files", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to look up versions by hash: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Operation: "version_files", StatusCode: resp.StatusCode}
	}

	// Unknown hashes are simply absent from the response object.
	var result map[string]Version
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode hash lookup response: %w", err)
	}
	return result, nil
}
