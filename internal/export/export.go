// Package export writes a distribution dataset to disk in several
// offline-friendly formats: JSON, CSV, plain-text list, summary report,
// family tree, YAML, and a Markdown report.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/errors"
	"github.com/distrograph/distrograph/pkg/logging"
	"github.com/distrograph/distrograph/pkg/stats"
)

// DefaultDir is where exports land when no directory is configured.
const DefaultDir = "exports"

// topBaseLimit caps the base-distribution ranking in reports.
const topBaseLimit = 10

// Exporter writes datasets to an output directory.
type Exporter struct {
	dir string
	now func() utc.Time
}

// New creates an Exporter rooted at dir, creating the directory if
// needed. An empty dir falls back to DefaultDir.
func New(dir string) (*Exporter, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO("create export directory", dir, err)
	}
	return &Exporter{dir: dir, now: utc.Now}, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Formats returns the supported format names in write order.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return names
}

type format struct {
	name   string
	suffix string
	write  func(*Exporter, distros.Dataset, string) (string, error)
}

var formats = []format{
	{"json", "_detailed.json", (*Exporter).JSON},
	{"csv", "_table.csv", (*Exporter).CSV},
	{"txt", "_list.txt", (*Exporter).TextList},
	{"summary", "_summary.txt", (*Exporter).SummaryReport},
	{"tree", "_tree.txt", (*Exporter).FamilyTree},
	{"yaml", "_data.yaml", (*Exporter).YAML},
	{"markdown", "_report.md", (*Exporter).Markdown},
}

// All exports the dataset in every supported format. Filenames share a
// timestamped base so one invocation's outputs sort together. The
// returned map is keyed by format name.
func (e *Exporter) All(ds distros.Dataset, prefix string) (map[string]string, error) {
	return e.Export(ds, prefix, Formats()...)
}

// Export writes the dataset in the named formats only. Unknown format
// names are an error before anything is written.
func (e *Exporter) Export(ds distros.Dataset, prefix string, names ...string) (map[string]string, error) {
	if prefix == "" {
		prefix = "distros"
	}

	selected := make([]format, 0, len(names))
	for _, name := range names {
		f, ok := lookupFormat(name)
		if !ok {
			return nil, &errors.ValidationError{
				Field:   "format",
				Value:   name,
				Message: fmt.Sprintf("unknown export format %q", name),
			}
		}
		selected = append(selected, f)
	}

	base := fmt.Sprintf("%s_%s", prefix, e.now().Format("20060102_150405"))

	results := make(map[string]string, len(selected))
	for _, f := range selected {
		path, err := f.write(e, ds, base+f.suffix)
		if err != nil {
			return results, fmt.Errorf("exporting %s: %w", f.name, err)
		}
		results[f.name] = path
	}

	logging.Info().
		Int("count", len(ds)).
		Int("formats", len(results)).
		Str("dir", e.dir).
		Msg("Dataset exported")
	return results, nil
}

func lookupFormat(name string) (format, bool) {
	for _, f := range formats {
		if f.name == name {
			return f, true
		}
	}
	return format{}, false
}

// JSON writes the dataset as indented JSON.
func (e *Exporter) JSON(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)
	if err := ds.SaveDataset(path); err != nil {
		return "", err
	}
	logging.Debug().Str("path", path).Msg("Exported detailed JSON")
	return path, nil
}

// csvHeader is the fixed column set for tabular exports. Keeping it
// stable lets downstream spreadsheets survive dataset growth.
var csvHeader = []string{
	"Name", "Human Name", "Color", "Based on", "Dates", "End Date",
	"Status", "Image", "Link", "Description", "Name Changes", "Source", "Enhanced",
}

// CSV writes the dataset as a table with a fixed column set. List
// fields are comma-joined into single cells.
func (e *Exporter) CSV(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	for i := range ds {
		d := &ds[i]
		row := []string{
			d.Name,
			d.HumanName,
			d.Color,
			d.BasedOn,
			strings.Join(d.Dates, ", "),
			d.EndDate,
			d.Status.String(),
			d.Image,
			d.Link,
			d.Description,
			joinNameChanges(d.NameChanges),
			d.Source,
			d.Enhanced,
		}
		if err := w.Write(row); err != nil {
			return "", errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	logging.Debug().Str("path", path).Msg("Exported CSV table")
	return path, nil
}

// TextList writes a human-readable bullet list of distributions.
func (e *Exporter) TextList(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)

	var b strings.Builder
	b.WriteString("Linux Distribution List\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i := range ds {
		d := &ds[i]
		fmt.Fprintf(&b, "• %s\n", d.DisplayName())
		fmt.Fprintf(&b, "  Name: %s\n", d.Name)
		fmt.Fprintf(&b, "  Status: %s\n", d.Status)
		fmt.Fprintf(&b, "  Based on: %s\n", d.BasedOn)
		if len(d.Dates) > 0 {
			fmt.Fprintf(&b, "  First release: %s\n", d.Dates[0])
		}
		if d.Link != "" {
			fmt.Fprintf(&b, "  Link: %s\n", d.Link)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	logging.Debug().Str("path", path).Msg("Exported text list")
	return path, nil
}

// SummaryReport writes aggregate statistics: totals, the base
// distribution ranking, and the decade histogram.
func (e *Exporter) SummaryReport(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)
	summary := stats.Summarize(ds)
	topBases := stats.TopBases(stats.BaseCounts(ds), topBaseLimit)

	var b strings.Builder
	b.WriteString("Distribution Summary Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Total Distributions: %d\n", summary.Total)
	fmt.Fprintf(&b, "Active Distributions: %d\n", summary.Active)
	fmt.Fprintf(&b, "Inactive Distributions: %d\n\n", summary.Inactive)

	b.WriteString("Top Base Distributions:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for _, bc := range topBases {
		fmt.Fprintf(&b, "%s: %d\n", bc.Base, bc.Count)
	}

	b.WriteString("\nDistributions by Decade:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for _, decade := range summary.Decades() {
		fmt.Fprintf(&b, "%s: %d\n", decade, summary.ByDecade[decade])
	}

	fmt.Fprintf(&b, "\nReport generated: %s\n", e.now().Format("2006-01-02 15:04:05"))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	logging.Debug().Str("path", path).Msg("Exported summary report")
	return path, nil
}

// FamilyTree writes an indented derivation tree. Independent
// distributions are roots; children hang off their first parent.
func (e *Exporter) FamilyTree(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)

	var roots []*distros.Distro
	children := make(map[string][]*distros.Distro)
	for i := range ds {
		d := &ds[i]
		parent := d.FirstParent()
		if parent == distros.Independent {
			roots = append(roots, d)
			continue
		}
		key := distros.Key(parent)
		children[key] = append(children[key], d)
	}
	sortByDisplayName(roots)
	for _, siblings := range children {
		sortByDisplayName(siblings)
	}

	var b strings.Builder
	b.WriteString("Distribution Family Tree\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("● = Active, ○ = Inactive\n\n")

	visited := make(map[string]bool)
	for _, root := range roots {
		writeTree(&b, root, 0, children, visited)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	logging.Debug().Str("path", path).Msg("Exported family tree")
	return path, nil
}

// writeTree renders one node and its descendants. The visited set
// breaks derivation cycles in dirty data.
func writeTree(b *strings.Builder, d *distros.Distro, level int, children map[string][]*distros.Distro, visited map[string]bool) {
	if visited[d.Key()] {
		return
	}
	visited[d.Key()] = true

	marker := "○"
	if d.Active() {
		marker = "●"
	}
	fmt.Fprintf(b, "%s%s %s\n", strings.Repeat("  ", level), marker, d.DisplayName())

	for _, child := range children[d.Key()] {
		writeTree(b, child, level+1, children, visited)
	}
}

// YAML writes the dataset as a YAML document.
func (e *Exporter) YAML(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)
	data, err := yaml.Marshal(ds)
	if err != nil {
		return "", fmt.Errorf("marshaling dataset to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	logging.Debug().Str("path", path).Msg("Exported YAML")
	return path, nil
}

func joinNameChanges(changes []distros.NameChange) string {
	if len(changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(changes))
	for _, nc := range changes {
		parts = append(parts, fmt.Sprintf("%s (%s)", nc.Name, nc.Date))
	}
	return strings.Join(parts, ", ")
}

func sortByDisplayName(ds []*distros.Distro) {
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].DisplayName() < ds[j].DisplayName()
	})
}
