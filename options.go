package distrograph

import (
	"net/http"
	"time"
)

// Defaults for dataset acquisition and archive location.
const (
	DefaultArchivePath = "gldt.csv"
	DefaultCachePath   = "out/dists.json"
)

// config holds Distrograph construction settings.
type config struct {
	archivePath string
	datasetURL  string
	cachePath   string
	httpClient  *http.Client
}

func defaultConfig() *config {
	return &config{
		archivePath: DefaultArchivePath,
		cachePath:   DefaultCachePath,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Option is a function that configures a Distrograph instance.
type Option func(*config) error

// WithArchivePath configures the path of the historical archive table.
func WithArchivePath(path string) Option {
	return func(c *config) error {
		c.archivePath = path
		return nil
	}
}

// WithDatasetURL configures the URL the scraped dataset is fetched from.
// Without a URL only the local cache file is consulted.
func WithDatasetURL(url string) Option {
	return func(c *config) error {
		c.datasetURL = url
		return nil
	}
}

// WithCachePath configures where the fetched dataset is cached on disk.
func WithCachePath(path string) Option {
	return func(c *config) error {
		c.cachePath = path
		return nil
	}
}

// WithHTTPClient configures a custom HTTP client for dataset fetching.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}
