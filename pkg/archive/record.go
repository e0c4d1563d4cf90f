package archive

import (
	"strings"

	"github.com/distrograph/distrograph/pkg/distros"
)

// Row column layout of a node entry in the archive table. Columns beyond
// Description repeat in (name, date, url) triples describing rename events.
const (
	colTag = iota
	colName
	colColor
	colParent
	colStartDate
	colEndDate
	colIcon
	colDescription
	colRenames
)

// nodeTag marks the only row kind this engine interprets.
const nodeTag = "N"

// minNodeFields is the minimum column count for a node row to be parsed.
const minNodeFields = 7

// Record is one parsed historical archive entry.
type Record struct {
	Key         string               // canonical lowercase name, unique within an Index
	DisplayName string               // original-case name for presentation
	Color       string               // display color token, may be empty
	Parent      string               // canonical parent name, or distros.Independent
	StartDate   string               // canonical dashed date, may be empty
	EndDate     string               // canonical dashed date; present implies inactive
	Dates       []string             // start date then end date, when present and distinct
	Icon        string               // icon reference, may be empty
	Link        string               // description reclassified as link when it is a URL
	Description string               // free-text description, empty when reclassified
	NameChanges []distros.NameChange // chronological rename events
}

// Status derives the lifecycle status from the end date.
func (r *Record) Status() distros.Status {
	if r.EndDate != "" {
		return distros.StatusInactive
	}
	return distros.StatusActive
}

// Distro converts the archive record into a dataset record tagged as
// archive-only.
func (r *Record) Distro() distros.Distro {
	d := distros.Distro{
		Name:        r.Key,
		HumanName:   r.DisplayName,
		Color:       r.Color,
		BasedOn:     r.Parent,
		EndDate:     r.EndDate,
		Status:      r.Status(),
		Image:       r.Icon,
		Link:        r.Link,
		Description: r.Description,
		Source:      distros.SourceArchive,
	}
	if len(r.Dates) > 0 {
		d.Dates = make([]string, len(r.Dates))
		copy(d.Dates, r.Dates)
	}
	if len(r.NameChanges) > 0 {
		d.NameChanges = make([]distros.NameChange, len(r.NameChanges))
		copy(d.NameChanges, r.NameChanges)
	}
	return d
}

// parseNode parses one node row into a Record. The caller has already
// verified the tag and the minimum field count.
func parseNode(row []string) *Record {
	rec := &Record{
		Key:         distros.Key(row[colName]),
		DisplayName: strings.TrimSpace(row[colName]),
		Color:       strings.TrimSpace(row[colColor]),
		Parent:      distros.Key(row[colParent]),
		StartDate:   NormalizeDate(row[colStartDate]),
		EndDate:     NormalizeDate(row[colEndDate]),
		Icon:        strings.TrimSpace(row[colIcon]),
	}
	if rec.Parent == "" {
		rec.Parent = distros.Independent
	}

	if len(row) > colDescription {
		desc := strings.TrimSpace(row[colDescription])
		// A description that parses as a URL is really a link.
		if strings.HasPrefix(desc, "http") {
			rec.Link = desc
		} else {
			rec.Description = desc
		}
	}

	if rec.StartDate != "" {
		rec.Dates = append(rec.Dates, rec.StartDate)
	}
	if rec.EndDate != "" && rec.EndDate != rec.StartDate {
		rec.Dates = append(rec.Dates, rec.EndDate)
	}

	rec.NameChanges = parseRenames(row)
	return rec
}

// parseRenames extracts the trailing (name, date, url) triples. The sequence
// stops at the first triple whose name or date field is missing; everything
// after a broken triple is discarded. A triple whose date is present but
// unparseable contributes nothing, but does not stop the scan. The URL slot
// of the final triple may be absent when the row ends early.
func parseRenames(row []string) []distros.NameChange {
	var changes []distros.NameChange
	for i := colRenames; i < len(row)-1; i += 3 {
		name := strings.TrimSpace(row[i])
		if name == "" || strings.TrimSpace(row[i+1]) == "" {
			break
		}
		date := NormalizeDate(row[i+1])
		if date == "" {
			continue
		}
		change := distros.NameChange{Name: name, Date: date}
		if len(row) > i+2 {
			change.URL = strings.TrimSpace(row[i+2])
		}
		changes = append(changes, change)
	}
	return changes
}
