package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covermark.dev/covermark/internal/domain"
)

// coversCmd represents the covers command.
var coversCmd = newCoversCmd()

func newCoversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covers <mark> [paths...]",
		Short: "Show hit and check sites for one mark",
		Long:  coversLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Covers(context.Background(), domain.CoversArgs{
				Scan: scanArgs(args[1:]),
				Mark: args[0],
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(coversCmd)
}
