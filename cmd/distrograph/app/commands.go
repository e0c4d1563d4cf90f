package app

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/distrograph/distrograph/internal/cmd/globals"
	"github.com/distrograph/distrograph/internal/cmd/output"
	"github.com/distrograph/distrograph/internal/export"
	"github.com/distrograph/distrograph/pkg/distros"
)

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List distributions from the scraped dataset",
		Example: `  distrograph list                     # List all distributions
  distrograph list --status active     # Active distributions only
  distrograph list --base debian       # Debian derivatives
  distrograph list --search buntu -l 5 # Search by name, limit results`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}
			ds, err := eng.Dataset(cmd.Context())
			if err != nil {
				return err
			}

			ds = filterDataset(ds, globals.ParseDataset(cmd))
			return output.FormatDistros(ds, a.globalFlags())
		},
	}

	globals.AddDatasetFlags(cmd)
	return cmd
}

// NewCombineCommand creates the combine command.
func (a *App) NewCombineCommand() *cobra.Command {
	var savePath string
	var countsOnly bool

	cmd := &cobra.Command{
		Use:     "combine",
		GroupID: "core",
		Short:   "Merge the scraped dataset with the historical archive",
		Long: `Combine merges the scraped dataset with the historical timeline
archive. Records present in both are enriched field by field; records
present only in the archive are appended and tagged with their source.`,
		Example: `  distrograph combine                    # Print the combined dataset
  distrograph combine --counts           # Print merge counts only
  distrograph combine --save out.json    # Write the combined dataset to a file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}
			result, err := eng.Combine(cmd.Context())
			if err != nil {
				return err
			}

			if savePath != "" {
				if err := result.Combined.SaveDataset(savePath); err != nil {
					return err
				}
				cmd.Printf("Wrote %d records to %s\n", len(result.Combined), savePath)
			}

			if countsOnly {
				return output.FormatAny(result.Counts(), a.globalFlags())
			}
			if savePath != "" {
				return nil
			}
			return output.FormatDistros(result.Combined, a.globalFlags())
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "Write the combined dataset to this file")
	cmd.Flags().BoolVar(&countsOnly, "counts", false, "Print merge counts instead of records")
	return cmd
}

// NewStatsCommand creates the stats command.
func (a *App) NewStatsCommand() *cobra.Command {
	var archiveOnly bool

	cmd := &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Show aggregate statistics for the combined dataset",
		Example: `  distrograph stats             # Statistics over the combined dataset
  distrograph stats --archive   # Statistics over the archive alone`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}

			summary, err := eng.Statistics(cmd.Context())
			if archiveOnly {
				summary, err = eng.ArchiveStatistics()
			}
			if err != nil {
				return err
			}
			return output.FormatSummary(summary, a.globalFlags())
		},
	}

	cmd.Flags().BoolVar(&archiveOnly, "archive", false, "Summarize the archive index alone")
	return cmd
}

// NewExportCommand creates the export command.
func (a *App) NewExportCommand() *cobra.Command {
	var dir string
	var prefix string
	var only []string

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Export the combined dataset in all offline formats",
		Long: `Export combines the dataset with the archive and writes the result
as JSON, CSV, YAML, a plain-text list, a summary report, a family tree,
and a Markdown report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}
			result, err := eng.Combine(cmd.Context())
			if err != nil {
				return err
			}

			exporter, err := export.New(dir)
			if err != nil {
				return err
			}
			selected := only
			if len(selected) == 0 {
				selected = export.Formats()
			}
			files, err := exporter.Export(result.Combined, prefix, selected...)
			if err != nil {
				return err
			}

			formats := make([]string, 0, len(files))
			for format := range files {
				formats = append(formats, format)
			}
			sort.Strings(formats)
			for _, format := range formats {
				cmd.Printf("%-8s %s\n", format, files[format])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", a.config.ExportDir, "Output directory for exports")
	cmd.Flags().StringVar(&prefix, "prefix", "distros", "Filename prefix for exports")
	cmd.Flags().StringSliceVar(&only, "only", nil,
		"Export only these formats (json, csv, txt, summary, tree, yaml, markdown)")
	return cmd
}

// NewFetchCommand creates the fetch command.
func (a *App) NewFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "fetch",
		GroupID: "core",
		Short:   "Fetch the scraped dataset, bypassing caches",
		Long: `Fetch downloads the scraped dataset from the configured URL,
ignoring the memory and disk caches, and refreshes the disk cache with
the result.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}
			ds, err := eng.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Fetched %d distributions\n", len(ds))
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("distrograph %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// globalFlags creates a globals.Flags snapshot from the app config.
func (a *App) globalFlags() *globals.Flags {
	return &globals.Flags{
		Verbose: a.config.Verbose,
		Quiet:   a.config.Quiet,
		NoColor: a.config.NoColor,
		Output:  a.config.Output,
	}
}

// filterDataset applies the list command's filter flags.
func filterDataset(ds distros.Dataset, flags *globals.DatasetFlags) distros.Dataset {
	filtered := make(distros.Dataset, 0, len(ds))
	for i := range ds {
		d := ds[i]
		if flags.Status != "" && !strings.EqualFold(flags.Status, d.Status.String()) {
			continue
		}
		if flags.Base != "" && distros.Key(flags.Base) != distros.Key(d.FirstParent()) {
			continue
		}
		if flags.Search != "" {
			needle := strings.ToLower(flags.Search)
			if !strings.Contains(strings.ToLower(d.Name), needle) &&
				!strings.Contains(strings.ToLower(d.HumanName), needle) {
				continue
			}
		}
		filtered = append(filtered, d)
		if flags.Limit > 0 && len(filtered) >= flags.Limit {
			break
		}
	}
	return filtered
}
