// Package fetch acquires the scraped distribution dataset, caching it
// in memory and on disk between runs.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/errors"
	"github.com/distrograph/distrograph/pkg/logging"
)

const (
	// datasetCacheKey is the memory cache key for the decoded dataset.
	datasetCacheKey = "dataset"

	// defaultTTL bounds how long a fetched dataset is reused before
	// the source is consulted again.
	defaultTTL = 15 * time.Minute
)

// Client fetches the scraped dataset, preferring the in-memory cache,
// then the disk cache, then the network.
type Client struct {
	url        string
	cachePath  string
	httpClient *http.Client
	memory     *gocache.Cache
	ttl        time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithURL sets the URL the dataset is downloaded from. An empty URL
// restricts the client to the disk cache.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithCachePath sets the disk cache location for the fetched dataset.
func WithCachePath(path string) Option {
	return func(c *Client) {
		c.cachePath = path
	}
}

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTTL sets how long a fetched dataset stays valid in memory.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.ttl = ttl
	}
}

// New creates a dataset fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		ttl:        defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.memory = gocache.New(c.ttl, 2*c.ttl)
	return c
}

// Dataset returns the scraped dataset. Resolution order is the memory
// cache, the disk cache, and finally the configured URL. A successful
// download refreshes the disk cache.
func (c *Client) Dataset(ctx context.Context) (distros.Dataset, error) {
	if cached, ok := c.memory.Get(datasetCacheKey); ok {
		if ds, ok := cached.(distros.Dataset); ok {
			logging.Debug().Int("count", len(ds)).Msg("Dataset served from memory cache")
			return ds, nil
		}
	}

	if ds, err := c.fromDisk(); err == nil {
		c.memory.Set(datasetCacheKey, ds, gocache.DefaultExpiration)
		return ds, nil
	} else if c.url == "" {
		return nil, err
	}

	ds, err := c.download(ctx)
	if err != nil {
		return nil, err
	}
	c.memory.Set(datasetCacheKey, ds, gocache.DefaultExpiration)
	return ds, nil
}

// Refresh discards caches and downloads the dataset again.
func (c *Client) Refresh(ctx context.Context) (distros.Dataset, error) {
	if c.url == "" {
		return nil, &errors.ConfigError{
			Component: "fetch",
			Message:   "no dataset URL configured",
		}
	}
	c.memory.Delete(datasetCacheKey)
	ds, err := c.download(ctx)
	if err != nil {
		return nil, err
	}
	c.memory.Set(datasetCacheKey, ds, gocache.DefaultExpiration)
	return ds, nil
}

func (c *Client) fromDisk() (distros.Dataset, error) {
	if c.cachePath == "" {
		return nil, &errors.NotFoundError{Resource: "dataset cache", ID: "(unset)"}
	}
	ds, err := distros.LoadDataset(c.cachePath)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Str("path", c.cachePath).
		Int("count", len(ds)).
		Msg("Dataset served from disk cache")
	return ds, nil
}

func (c *Client) download(ctx context.Context) (distros.Dataset, error) {
	if c.url == "" {
		return nil, &errors.ConfigError{
			Component: "fetch",
			Message:   "no dataset URL configured and no usable cache",
		}
	}

	logging.Info().Str("url", c.url).Msg("Downloading dataset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapResource("fetch", "dataset", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.ResourceError{
			Operation: "fetch",
			Resource:  "dataset",
			ID:        c.url,
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	ds, err := distros.DecodeDataset(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := c.writeDiskCache(ds); err != nil {
		logging.Warn().Err(err).Str("path", c.cachePath).Msg("Failed to write dataset cache")
	}

	logging.Info().Int("count", len(ds)).Msg("Dataset downloaded")
	return ds, nil
}

func (c *Client) writeDiskCache(ds distros.Dataset) error {
	if c.cachePath == "" {
		return nil
	}
	if dir := filepath.Dir(c.cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create cache directory", dir, err)
		}
	}
	return ds.SaveDataset(c.cachePath)
}
