package reconcile

import (
	"github.com/agentstation/utc"

	"github.com/distrograph/distrograph/pkg/distros"
)

// Result carries the combined dataset and merge statistics for one
// Combine call.
type Result struct {
	// Combined is the canonical merged dataset: scraped records first in
	// original order, archive-only records after in load order.
	Combined distros.Dataset `json:"combined" yaml:"combined"`

	// Enhanced counts scraped records that were merged with archive data.
	Enhanced int `json:"enhanced" yaml:"enhanced"`

	// Passthrough counts scraped records with no archive counterpart.
	Passthrough int `json:"passthrough" yaml:"passthrough"`

	// ArchiveOnly counts records present only in the archive.
	ArchiveOnly int `json:"archive_only" yaml:"archive_only"`

	// CompletedAt is when the merge pass finished.
	CompletedAt utc.Time `json:"completed_at" yaml:"completed_at"`
}

// Total returns the size of the combined dataset.
func (r *Result) Total() int {
	return len(r.Combined)
}

// Counts holds the merge statistics without the dataset itself.
type Counts struct {
	Total       int      `json:"total" yaml:"total"`
	Enhanced    int      `json:"enhanced" yaml:"enhanced"`
	Passthrough int      `json:"passthrough" yaml:"passthrough"`
	ArchiveOnly int      `json:"archive_only" yaml:"archive_only"`
	CompletedAt utc.Time `json:"completed_at" yaml:"completed_at"`
}

// Counts returns the merge statistics without the dataset itself.
func (r *Result) Counts() Counts {
	return Counts{
		Total:       r.Total(),
		Enhanced:    r.Enhanced,
		Passthrough: r.Passthrough,
		ArchiveOnly: r.ArchiveOnly,
		CompletedAt: r.CompletedAt,
	}
}
