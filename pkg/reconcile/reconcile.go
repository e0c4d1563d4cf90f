// Package reconcile combines a freshly scraped distribution dataset with
// the historical archive index into one canonical dataset under explicit
// field-level precedence rules.
//
// The merge is a single synchronous pass: scraped records first, in their
// original order, each enhanced with archive data when its canonical key
// matches; then every archive record that never appeared in the scraped
// dataset, in archive load order, tagged as archive-only. Source records
// are never mutated.
package reconcile

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/distrograph/distrograph/pkg/archive"
	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/logging"
)

// EnhancedMarker records on a merged record that archive data was applied.
const EnhancedMarker = "Combined with archive data"

// Combiner merges scraped datasets against an archive index. The index is
// built lazily on first use and reused by subsequent Combine calls on the
// same Combiner, so repeated merges pay the parse cost once.
//
// A built index is read-only: concurrent Combine calls on an
// already-initialized Combiner are safe. Construction itself is not
// synchronized; initialize from a single goroutine.
type Combiner struct {
	archivePath string
	index       *archive.Index
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithArchivePath sets the archive table path to load lazily.
func WithArchivePath(path string) Option {
	return func(c *Combiner) {
		c.archivePath = path
	}
}

// WithIndex supplies a pre-built archive index, bypassing the lazy load.
func WithIndex(idx *archive.Index) Option {
	return func(c *Combiner) {
		c.index = idx
	}
}

// New creates a Combiner with options.
func New(opts ...Option) *Combiner {
	c := &Combiner{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the archive index, loading it on first use.
func (c *Combiner) Index() (*archive.Index, error) {
	if c.index != nil {
		return c.index, nil
	}
	idx, err := archive.Load(c.archivePath)
	if err != nil {
		return nil, fmt.Errorf("loading archive index: %w", err)
	}
	c.index = idx
	return idx, nil
}

// Combine merges the scraped dataset against the archive index and returns
// the combined dataset with merge statistics. The input dataset is not
// modified; every record in the result is an independent copy.
func (c *Combiner) Combine(scraped distros.Dataset) (*Result, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Combined: make(distros.Dataset, 0, len(scraped)+idx.Len()),
	}
	scrapedKeys := scraped.Keys()

	for i := range scraped {
		key := scraped[i].Key()
		rec, ok := idx.Get(key)
		if !ok {
			result.Combined = append(result.Combined, scraped[i].Clone())
			result.Passthrough++
			continue
		}
		result.Combined = append(result.Combined, c.mergeRecord(scraped[i], rec, result))
	}

	// Archive-only records follow, in archive load order.
	for _, rec := range idx.Records() {
		if _, seen := scrapedKeys[rec.Key]; seen {
			continue
		}
		result.Combined = append(result.Combined, rec.Distro())
		result.ArchiveOnly++
	}

	result.CompletedAt = utc.Now()

	logging.Info().
		Int("scraped", len(scraped)).
		Int("enhanced", result.Enhanced).
		Int("archive_only", result.ArchiveOnly).
		Int("combined", len(result.Combined)).
		Msg("Combined archive data with scraped dataset")

	return result, nil
}

// mergeRecord applies the field precedence table to one scraped record and
// its archive counterpart. An unexpected panic while merging a single
// record keeps the scraped original and continues the run, mirroring the
// row-level tolerance of the archive parser.
func (c *Combiner) mergeRecord(scraped distros.Distro, rec *archive.Record, result *Result) (merged distros.Distro) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn().
				Interface("panic", r).
				Str("distro", scraped.Name).
				Msg("Keeping scraped record after merge failure")
			merged = scraped.Clone()
			result.Passthrough++
		}
	}()

	merged = scraped.Clone()
	for _, fr := range fieldResolvers {
		fr.resolve(&merged, rec)
	}
	merged.Enhanced = EnhancedMarker
	result.Enhanced++
	return merged
}
