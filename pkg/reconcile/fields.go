package reconcile

import (
	"github.com/distrograph/distrograph/pkg/archive"
	"github.com/distrograph/distrograph/pkg/distros"
)

// fieldResolver resolves one field of a merged record from its scraped base
// and its archive counterpart. Resolvers are pure: they read the archive
// record and write at most one field of the merged copy, so each precedence
// rule stays independently testable.
type fieldResolver struct {
	name    string
	resolve func(merged *distros.Distro, rec *archive.Record)
}

// fieldResolvers is the precedence table applied, in order, when a scraped
// record has an archive counterpart. Archive wins except where noted.
var fieldResolvers = []fieldResolver{
	{name: "color", resolve: resolveColor},
	{name: "end_date", resolve: resolveEndDate},
	{name: "dates", resolve: resolveDates},
	{name: "based_on", resolve: resolveBasedOn},
	{name: "name_changes", resolve: resolveNameChanges},
	{name: "description", resolve: resolveDescription},
	{name: "link", resolve: resolveLink},
}

// resolveColor takes the archive color when present; the scraped dataset
// carries no color field of its own.
func resolveColor(merged *distros.Distro, rec *archive.Record) {
	if rec.Color != "" {
		merged.Color = rec.Color
	}
}

// resolveEndDate takes the archive end date when present.
func resolveEndDate(merged *distros.Distro, rec *archive.Record) {
	if rec.EndDate != "" {
		merged.EndDate = rec.EndDate
	}
}

// resolveDates takes the archive date sequence when non-empty, else keeps
// the scraped sequence. The two are never unioned.
func resolveDates(merged *distros.Distro, rec *archive.Record) {
	if len(rec.Dates) > 0 {
		merged.Dates = make([]string, len(rec.Dates))
		copy(merged.Dates, rec.Dates)
	}
}

// resolveBasedOn takes the archive parent unless it is absent or the
// independent sentinel; the scraped value survives otherwise.
func resolveBasedOn(merged *distros.Distro, rec *archive.Record) {
	if rec.Parent != "" && rec.Parent != distros.Independent {
		merged.BasedOn = rec.Parent
	}
}

// resolveNameChanges takes the archive rename events when any exist.
func resolveNameChanges(merged *distros.Distro, rec *archive.Record) {
	if len(rec.NameChanges) > 0 {
		merged.NameChanges = make([]distros.NameChange, len(rec.NameChanges))
		copy(merged.NameChanges, rec.NameChanges)
	}
}

// resolveDescription takes the archive description when non-empty.
func resolveDescription(merged *distros.Distro, rec *archive.Record) {
	if rec.Description != "" {
		merged.Description = rec.Description
	}
}

// resolveLink prefers whichever link is non-empty and longer. A longer
// archive link is presumed richer than a short scraped one. This is a
// policy choice carried over from the source data, not a correctness rule.
func resolveLink(merged *distros.Distro, rec *archive.Record) {
	if rec.Link != "" && (merged.Link == "" || len(rec.Link) > len(merged.Link)) {
		merged.Link = rec.Link
	}
}
