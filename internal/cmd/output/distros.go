package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/distrograph/distrograph/internal/cmd/globals"
	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/stats"
)

// FormatDistros handles the common pattern of formatting a dataset for
// output. Table formats get curated columns; structured formats get the
// records themselves.
func FormatDistros(ds distros.Dataset, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	var outputData any
	switch Format(globalFlags.Output) {
	case FormatTable, FormatWide, "":
		outputData = DistrosToTableData(ds, globalFlags.Output == string(FormatWide))
	default:
		outputData = ds
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatSummary formats aggregate statistics for output.
func FormatSummary(summary stats.Summary, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	var outputData any
	switch Format(globalFlags.Output) {
	case FormatTable, FormatWide, "":
		outputData = SummaryToTableData(summary)
	default:
		outputData = summary
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}

// DistrosToTableData builds the table view of a dataset. Wide adds the
// archive-derived columns.
func DistrosToTableData(ds distros.Dataset, wide bool) Data {
	headers := []string{"Name", "Status", "Based On", "First Release"}
	if wide {
		headers = append(headers, "End Date", "Color", "Renames", "Source", "Link")
	}

	rows := make([][]string, 0, len(ds))
	for i := range ds {
		d := &ds[i]
		first := ""
		if len(d.Dates) > 0 {
			first = d.Dates[0]
		}
		row := []string{d.DisplayName(), d.Status.String(), d.BasedOn, first}
		if wide {
			renames := make([]string, 0, len(d.NameChanges))
			for _, nc := range d.NameChanges {
				renames = append(renames, nc.Name)
			}
			row = append(row, d.EndDate, d.Color, strings.Join(renames, ", "), d.Source, d.Link)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// SummaryToTableData builds the table view of aggregate statistics.
func SummaryToTableData(summary stats.Summary) Data {
	rows := [][]string{
		{"Total", strconv.Itoa(summary.Total)},
		{"Active", strconv.Itoa(summary.Active)},
		{"Inactive", strconv.Itoa(summary.Inactive)},
		{"With color", strconv.Itoa(summary.WithColor)},
		{"With name changes", strconv.Itoa(summary.WithNameChanges)},
	}
	for _, decade := range summary.Decades() {
		rows = append(rows, []string{decade, strconv.Itoa(summary.ByDecade[decade])})
	}

	return Data{
		Headers:         []string{"Metric", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
