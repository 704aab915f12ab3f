package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covermark.dev/covermark/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List coverage marks and their status",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Scan: scanArgs(args),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
