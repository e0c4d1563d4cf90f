// Package distros defines the distribution record model shared by the
// archive parser, the merge engine, and the export collaborators, together
// with JSON dataset encoding and decoding.
//
// The JSON field names match the scraped dataset interchange format, which
// predates this implementation and uses human-readable keys with spaces.
package distros

import "strings"

// Distro represents one distribution entry in the scraped, archive, or
// combined dataset.
type Distro struct {
	Name        string       `json:"Name" yaml:"name"`                                   // Canonical-ish name as scraped (joined on its lowercase form)
	HumanName   string       `json:"Human Name,omitempty" yaml:"human_name,omitempty"`   // Original-case name for presentation
	Color       string       `json:"Color,omitempty" yaml:"color,omitempty"`             // Display color token, archive-supplied
	BasedOn     string       `json:"Based on,omitempty" yaml:"based_on,omitempty"`       // Parent name, possibly a comma-joined list, or "independent"
	Dates       []string     `json:"Dates,omitempty" yaml:"dates,omitempty"`             // Known dates, first = earliest known, canonical dashed form
	EndDate     string       `json:"End Date,omitempty" yaml:"end_date,omitempty"`       // Retirement date, canonical dashed form
	Status      Status       `json:"Status,omitempty" yaml:"status,omitempty"`           // Active or Inactive
	Image       string       `json:"Image,omitempty" yaml:"image,omitempty"`             // Logo/icon reference
	Link        string       `json:"Link,omitempty" yaml:"link,omitempty"`               // Project URL
	Description string       `json:"Description,omitempty" yaml:"description,omitempty"` // Free-text description
	NameChanges []NameChange `json:"Name Changes,omitempty" yaml:"name_changes,omitempty"`
	Source      string       `json:"Source,omitempty" yaml:"source,omitempty"`     // Set to SourceArchive for archive-only records
	Enhanced    string       `json:"Enhanced,omitempty" yaml:"enhanced,omitempty"` // Set on records merged with archive data
}

// NameChange represents a historical rename event: a distribution changing
// its public name at a given date, optionally with a reference link.
type NameChange struct {
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Status represents the lifecycle status of a distribution.
type Status string

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Distribution lifecycle statuses.
const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// SourceArchive marks records present only in the historical archive.
const SourceArchive = "archive"

// Independent is the parent sentinel for distributions not based on
// any other distribution.
const Independent = "independent"

// Key returns the canonical join key for the distribution: its name,
// whitespace-trimmed and lowercased.
func (d *Distro) Key() string {
	return Key(d.Name)
}

// Active reports whether the distribution is currently active.
func (d *Distro) Active() bool {
	return d.Status == StatusActive
}

// DisplayName returns the human name when present, else the raw name.
func (d *Distro) DisplayName() string {
	if d.HumanName != "" {
		return d.HumanName
	}
	return d.Name
}

// FirstParent returns the first entry of a possibly comma-joined parent
// list, trimmed. An empty or independent parent returns Independent.
func (d *Distro) FirstParent() string {
	based := d.BasedOn
	if i := strings.IndexByte(based, ','); i >= 0 {
		based = based[:i]
	}
	based = strings.TrimSpace(based)
	if based == "" {
		return Independent
	}
	return based
}

// Key normalizes a distribution name into its canonical join key.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
