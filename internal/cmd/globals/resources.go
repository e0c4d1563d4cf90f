package globals

import "github.com/spf13/cobra"

// DatasetFlags holds flags for dataset-listing operations.
type DatasetFlags struct {
	Status string
	Base   string
	Search string
	Limit  int
}

// AddDatasetFlags adds dataset filter flags to a command.
func AddDatasetFlags(cmd *cobra.Command) *DatasetFlags {
	flags := &DatasetFlags{}

	cmd.Flags().StringVar(&flags.Status, "status", "",
		"Filter by status (active, inactive)")
	cmd.Flags().StringVar(&flags.Base, "base", "",
		"Filter by base distribution")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term to filter by name")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// ParseDataset extracts dataset filter flags from a command.
// The command must have had AddDatasetFlags called on it, otherwise this will panic.
func ParseDataset(cmd *cobra.Command) *DatasetFlags {
	return &DatasetFlags{
		Status: mustGetString(cmd, "status"),
		Base:   mustGetString(cmd, "base"),
		Search: mustGetString(cmd, "search"),
		Limit:  mustGetInt(cmd, "limit"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
