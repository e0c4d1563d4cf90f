package export

import (
	"fmt"
	"os"
	"path/filepath"

	md "github.com/nao1215/markdown"

	"github.com/distrograph/distrograph/pkg/distros"
	"github.com/distrograph/distrograph/pkg/errors"
	"github.com/distrograph/distrograph/pkg/logging"
	"github.com/distrograph/distrograph/pkg/stats"
)

// Markdown writes a report with overview counts, the base ranking, the
// decade histogram, and a per-distribution table.
func (e *Exporter) Markdown(ds distros.Dataset, filename string) (string, error) {
	path := filepath.Join(e.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	defer f.Close()

	summary := stats.Summarize(ds)
	topBases := stats.TopBases(stats.BaseCounts(ds), topBaseLimit)

	baseRows := make([][]string, 0, len(topBases))
	for _, bc := range topBases {
		baseRows = append(baseRows, []string{bc.Base, fmt.Sprintf("%d", bc.Count)})
	}

	decadeRows := make([][]string, 0, len(summary.ByDecade))
	for _, decade := range summary.Decades() {
		decadeRows = append(decadeRows, []string{decade, fmt.Sprintf("%d", summary.ByDecade[decade])})
	}

	distroRows := make([][]string, 0, len(ds))
	for i := range ds {
		d := &ds[i]
		first := ""
		if len(d.Dates) > 0 {
			first = d.Dates[0]
		}
		distroRows = append(distroRows, []string{
			d.DisplayName(),
			d.Status.String(),
			d.BasedOn,
			first,
			d.Link,
		})
	}

	doc := md.NewMarkdown(f).
		H1("Distribution Report").
		PlainTextf("Generated %s.", e.now().Format("2006-01-02 15:04:05 MST")).
		LF().
		H2("Overview").
		BulletList(
			fmt.Sprintf("Total distributions: %d", summary.Total),
			fmt.Sprintf("Active: %d", summary.Active),
			fmt.Sprintf("Inactive: %d", summary.Inactive),
			fmt.Sprintf("With archive color: %d", summary.WithColor),
			fmt.Sprintf("With recorded renames: %d", summary.WithNameChanges),
		).
		LF().
		H2("Top Base Distributions").
		Table(md.TableSet{
			Header: []string{"Base", "Count"},
			Rows:   baseRows,
		}).
		H2("Distributions by Decade").
		Table(md.TableSet{
			Header: []string{"Decade", "Count"},
			Rows:   decadeRows,
		}).
		H2("Distributions").
		Table(md.TableSet{
			Header: []string{"Name", "Status", "Based on", "First release", "Link"},
			Rows:   distroRows,
		})

	if err := doc.Build(); err != nil {
		return "", fmt.Errorf("building markdown report: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Exported markdown report")
	return path, nil
}
