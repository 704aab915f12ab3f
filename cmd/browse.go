package cmd

import (
	"github.com/spf13/cobra"

	"covermark.dev/covermark/internal/domain"
)

// browseCmd represents the browse command.
var browseCmd = newBrowseCmd()

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [paths...]",
		Short: "Browse marks in an interactive terminal UI",
		Long:  browseLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Browse(cmd.Context(), domain.BrowseArgs{
				Scan: scanArgs(args),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
