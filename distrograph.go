// Package distrograph reconciles two independently produced datasets
// describing Linux-distribution lineage: a freshly scraped dataset and a
// historical archive table. It exposes the scraped dataset, the combined
// dataset, and summary statistics behind one caller-owned instance that
// loads each input at most once.
package distrograph

import (
	"context"
	"fmt"
	"sync"

	"github.com/distrograph/distrograph/internal/fetch"
	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/reconcile"
	"github.com/distrograph/distrograph/pkg/stats"
)

// Distrograph manages dataset acquisition and reconciliation.
type Distrograph interface {
	// Dataset returns the scraped dataset, fetching or reading the cache
	// on first use.
	Dataset(ctx context.Context) (distros.Dataset, error)

	// Refresh discards cached data and fetches the dataset again.
	Refresh(ctx context.Context) (distros.Dataset, error)

	// Combine merges the scraped dataset with the archive index.
	Combine(ctx context.Context) (*reconcile.Result, error)

	// Statistics summarizes the combined dataset.
	Statistics(ctx context.Context) (stats.Summary, error)

	// ArchiveStatistics summarizes the archive index alone.
	ArchiveStatistics() (stats.Summary, error)
}

// distrograph is the internal implementation of the Distrograph interface.
type distrograph struct {
	mu       sync.Mutex
	config   *config
	fetcher  *fetch.Client
	combiner *reconcile.Combiner
	dataset  distros.Dataset
}

// New creates a new Distrograph instance with the given options.
func New(opts ...Option) (Distrograph, error) {
	d := &distrograph{config: defaultConfig()}

	for _, opt := range opts {
		if err := opt(d.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	d.fetcher = fetch.New(
		fetch.WithURL(d.config.datasetURL),
		fetch.WithCachePath(d.config.cachePath),
		fetch.WithHTTPClient(d.config.httpClient),
	)
	d.combiner = reconcile.New(reconcile.WithArchivePath(d.config.archivePath))

	return d, nil
}

// Dataset returns the scraped dataset, loading it on first use.
func (d *distrograph) Dataset(ctx context.Context) (distros.Dataset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.datasetLocked(ctx)
}

func (d *distrograph) datasetLocked(ctx context.Context) (distros.Dataset, error) {
	if d.dataset != nil {
		return d.dataset, nil
	}
	ds, err := d.fetcher.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	d.dataset = ds
	return ds, nil
}

// Refresh discards cached data and fetches the dataset again.
func (d *distrograph) Refresh(ctx context.Context) (distros.Dataset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ds, err := d.fetcher.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	d.dataset = ds
	return ds, nil
}

// Combine merges the scraped dataset with the archive index.
func (d *distrograph) Combine(ctx context.Context) (*reconcile.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ds, err := d.datasetLocked(ctx)
	if err != nil {
		return nil, err
	}
	return d.combiner.Combine(ds)
}

// Statistics summarizes the combined dataset.
func (d *distrograph) Statistics(ctx context.Context) (stats.Summary, error) {
	result, err := d.Combine(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(result.Combined), nil
}

// ArchiveStatistics summarizes the archive index alone.
func (d *distrograph) ArchiveStatistics() (stats.Summary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx, err := d.combiner.Index()
	if err != nil {
		return stats.Summary{}, err
	}

	ds := make(distros.Dataset, 0, idx.Len())
	for _, rec := range idx.Records() {
		ds = append(ds, rec.Distro())
	}
	return stats.Summarize(ds), nil
}
